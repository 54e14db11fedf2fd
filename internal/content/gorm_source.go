package content

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/gorm"
)

// GormSource is a Source over a soft-deletable GORM model. Existence checks
// ignore soft-deleted rows, and Delete is a soft delete.
type GormSource struct {
	db         *gorm.DB
	targetType models.TargetType
	newModel   func() interface{}
	name       string
}

func NewGormSource(db *gorm.DB, targetType models.TargetType, name string, newModel func() interface{}) *GormSource {
	return &GormSource{db: db, targetType: targetType, newModel: newModel, name: name}
}

func (s *GormSource) TargetType() models.TargetType { return s.targetType }

func (s *GormSource) Models() []interface{} {
	return []interface{}{s.newModel()}
}

func (s *GormSource) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	err := database.Conn(ctx, s.db).Model(s.newModel()).Where("id = ?", id).Count(&n).Error
	if err != nil {
		return false, apperrors.Storage(fmt.Sprintf("check %s", s.name), err)
	}
	return n > 0, nil
}

func (s *GormSource) Delete(ctx context.Context, id int64) error {
	result := database.Conn(ctx, s.db).Where("id = ?", id).Delete(s.newModel())
	if result.Error != nil {
		return apperrors.Storage(fmt.Sprintf("delete %s", s.name), result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(s.name, id)
	}
	return nil
}
