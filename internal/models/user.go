package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User carries the account identity plus its sanction state. The sanction
// columns are written only by store.SanctionStore.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email    string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role     string `gorm:"size:20;default:'user'" json:"role"`

	IsBanned        bool       `gorm:"not null;default:false" json:"is_banned"`
	BannedAt        *time.Time `json:"banned_at,omitempty"`
	BannedReason    string     `gorm:"size:500" json:"banned_reason,omitempty"`
	BannedByAdminID *int64     `json:"banned_by_admin_id,omitempty"`

	IsSuspended        bool       `gorm:"not null;default:false" json:"is_suspended"`
	SuspendedUntil     *time.Time `json:"suspended_until,omitempty"`
	SuspensionReason   string     `gorm:"size:500" json:"suspension_reason,omitempty"`
	SuspendedByAdminID *int64     `json:"suspended_by_admin_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MaxSuspensionDays bounds a single suspension to roughly a century, well
// inside the range a time.Duration can add to a timestamp.
const MaxSuspensionDays = 36500

// SuspensionEnd is the instant a suspension of days whole days starting at
// at expires. Callers keep days within [1, MaxSuspensionDays].
func SuspensionEnd(at time.Time, days int) time.Time {
	return at.Add(time.Duration(days) * 24 * time.Hour)
}
