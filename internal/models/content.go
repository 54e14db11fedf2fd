package models

import (
	"time"

	"gorm.io/gorm"
)

// Post and Opportunity are the reportable content kinds. Only the columns the
// moderation flow touches are modelled here.
type Post struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  int64          `gorm:"not null;index" json:"author_id"`
	Text      string         `gorm:"type:text" json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Opportunity struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CompanyID   int64          `gorm:"not null;index" json:"company_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:255" json:"location"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
