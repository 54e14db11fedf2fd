package models

import (
	"strings"
	"time"
)

// TargetType tags what a report points at. The set is closed: POST, OPPORTUNITY, USER.
type TargetType string

const (
	TargetPost        TargetType = "POST"
	TargetOpportunity TargetType = "OPPORTUNITY"
	TargetUser        TargetType = "USER"
)

// TargetTypes lists every known target type in a stable order.
var TargetTypes = []TargetType{TargetPost, TargetOpportunity, TargetUser}

func (t TargetType) Valid() bool {
	switch t {
	case TargetPost, TargetOpportunity, TargetUser:
		return true
	}
	return false
}

// ParseTargetType is case-insensitive; ok is false for anything outside the closed set.
func ParseTargetType(s string) (TargetType, bool) {
	t := TargetType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

type ReportStatus string

const (
	StatusPending   ReportStatus = "PENDING"
	StatusReviewed  ReportStatus = "REVIEWED"
	StatusResolved  ReportStatus = "RESOLVED"
	StatusDismissed ReportStatus = "DISMISSED"
)

var transitions = map[ReportStatus][]ReportStatus{
	StatusPending:  {StatusReviewed, StatusResolved, StatusDismissed},
	StatusReviewed: {StatusResolved, StatusDismissed},
}

// OpenStatuses are the non-terminal states a closing action may move.
var OpenStatuses = []ReportStatus{StatusPending, StatusReviewed}

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

func (s ReportStatus) Terminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// CanTransitionTo follows the forward-only status graph.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

func ParseReportStatus(s string) (ReportStatus, bool) {
	st := ReportStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

type ActionTaken string

const (
	ActionNone           ActionTaken = "NONE"
	ActionContentRemoved ActionTaken = "CONTENT_REMOVED"
	ActionUserWarned     ActionTaken = "USER_WARNED"
	ActionUserSuspended  ActionTaken = "USER_SUSPENDED"
	ActionUserBanned     ActionTaken = "USER_BANNED"
)

// Report is a user-submitted flag against a post, opportunity, or user.
// Rows are never deleted; they outlive their targets as an audit trail.
type Report struct {
	ID                int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ReporterID        int64        `gorm:"not null;index" json:"reporter_id"`
	TargetType        TargetType   `gorm:"size:20;not null;index:idx_reports_target_status,priority:1" json:"target_type"`
	TargetID          int64        `gorm:"not null;index:idx_reports_target_status,priority:2" json:"target_id"`
	Reason            string       `gorm:"size:500;not null" json:"reason"`
	Status            ReportStatus `gorm:"size:20;not null;default:'PENDING';index:idx_reports_target_status,priority:3;index:idx_reports_status" json:"status"`
	ActionTaken       ActionTaken  `gorm:"size:30;not null;default:'NONE'" json:"action_taken"`
	ResolvedByAdminID *int64       `json:"resolved_by_admin_id,omitempty"`
	ResolvedAt        *time.Time   `json:"resolved_at,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}
