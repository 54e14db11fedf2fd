package opportunities

import (
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/gorm"
)

// New returns the content source for reported opportunities.
func New(db *gorm.DB) *content.GormSource {
	return content.NewGormSource(db, models.TargetOpportunity, "opportunity", func() interface{} { return &models.Opportunity{} })
}
