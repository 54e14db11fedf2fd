package accounts

import (
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/gorm"
)

// New returns the content source for reported user accounts. Deleting a
// reported account soft-deletes the users row; its sanction columns stay.
func New(db *gorm.DB) *content.GormSource {
	return content.NewGormSource(db, models.TargetUser, "user", func() interface{} { return &models.User{} })
}
