package posts

import (
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/gorm"
)

// New returns the content source for reported posts.
func New(db *gorm.DB) *content.GormSource {
	return content.NewGormSource(db, models.TargetPost, "post", func() interface{} { return &models.Post{} })
}
