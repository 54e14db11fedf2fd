package store

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/gorm"
)

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := database.Conn(ctx, s.db).Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, apperrors.Storage("check user", err)
	}
	return n > 0, nil
}

func (s *UserStore) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := database.Conn(ctx, s.db).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("user", id)
	}
	if err != nil {
		return nil, apperrors.Storage("get user", err)
	}
	return &user, nil
}

// IsAdmin reports whether id belongs to an active account with the admin role.
func (s *UserStore) IsAdmin(ctx context.Context, id int64) (bool, error) {
	user, err := s.Get(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}

// SanctionStore writes ban and suspension state onto users rows.
type SanctionStore struct {
	db *gorm.DB
}

func NewSanctionStore(db *gorm.DB) *SanctionStore {
	return &SanctionStore{db: db}
}

func (s *SanctionStore) ApplyBan(ctx context.Context, userID, adminID int64, reason string, at time.Time) error {
	return s.apply(ctx, "apply ban", userID, map[string]interface{}{
		"is_banned":          true,
		"banned_at":          at,
		"banned_reason":      reason,
		"banned_by_admin_id": adminID,
		"updated_at":         at,
	})
}

func (s *SanctionStore) ApplySuspension(ctx context.Context, userID, adminID int64, reason string, durationDays int, at time.Time) error {
	return s.apply(ctx, "apply suspension", userID, map[string]interface{}{
		"is_suspended":          true,
		"suspended_until":       models.SuspensionEnd(at, durationDays),
		"suspension_reason":     reason,
		"suspended_by_admin_id": adminID,
		"updated_at":            at,
	})
}

func (s *SanctionStore) apply(ctx context.Context, op string, userID int64, values map[string]interface{}) error {
	result := database.Conn(ctx, s.db).Model(&models.User{}).Where("id = ?", userID).Updates(values)
	if result.Error != nil {
		return apperrors.Storage(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("user", userID)
	}
	return nil
}
