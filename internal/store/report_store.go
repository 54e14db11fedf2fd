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

// ReportStore persists reports. Every method joins the transaction carried by
// ctx, if any.
type ReportStore struct {
	db *gorm.DB
}

func NewReportStore(db *gorm.DB) *ReportStore {
	return &ReportStore{db: db}
}

// ReportFilter narrows listings; zero fields are ignored.
type ReportFilter struct {
	Status     models.ReportStatus
	TargetType models.TargetType
	TargetID   int64
}

// TargetCount is one row of the pending-report aggregation.
type TargetCount struct {
	TargetID    int64 `json:"target_id"`
	ReportCount int64 `json:"count"`
}

// StatusUpdate describes a bulk transition. An empty Action leaves
// action_taken as is; a nil AdminID leaves the resolution stamp unset.
type StatusUpdate struct {
	From    []models.ReportStatus
	To      models.ReportStatus
	Action  models.ActionTaken
	AdminID *int64
	At      time.Time
}

// ForTarget returns a scope matching every report against one target.
func ForTarget(targetType models.TargetType, targetID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("target_type = ? AND target_id = ?", targetType, targetID)
	}
}

// ByID returns a scope matching a single report.
func ByID(id int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func withFilter(f ReportFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" {
			db = db.Where("status = ?", f.Status)
		}
		if f.TargetType != "" {
			db = db.Where("target_type = ?", f.TargetType)
		}
		if f.TargetID != 0 {
			db = db.Where("target_id = ?", f.TargetID)
		}
		return db
	}
}

func (s *ReportStore) Create(ctx context.Context, report *models.Report) error {
	if err := database.Conn(ctx, s.db).Create(report).Error; err != nil {
		return apperrors.Storage("create report", err)
	}
	return nil
}

func (s *ReportStore) Get(ctx context.Context, id int64) (*models.Report, error) {
	var report models.Report
	err := database.Conn(ctx, s.db).First(&report, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("report", id)
	}
	if err != nil {
		return nil, apperrors.Storage("get report", err)
	}
	return &report, nil
}

// List returns matching reports, newest first.
func (s *ReportStore) List(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	var reports []models.Report
	err := database.Conn(ctx, s.db).
		Scopes(withFilter(f)).
		Order("created_at DESC").Order("id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, apperrors.Storage("list reports", err)
	}
	return reports, nil
}

// ListByTargetType returns every report of one target type grouped by target,
// oldest first within a target.
func (s *ReportStore) ListByTargetType(ctx context.Context, targetType models.TargetType) ([]models.Report, error) {
	var reports []models.Report
	err := database.Conn(ctx, s.db).
		Where("target_type = ?", targetType).
		Order("target_id ASC").Order("id ASC").
		Find(&reports).Error
	if err != nil {
		return nil, apperrors.Storage("list reports by target type", err)
	}
	return reports, nil
}

func (s *ReportStore) Count(ctx context.Context, f ReportFilter) (int64, error) {
	var n int64
	err := database.Conn(ctx, s.db).Model(&models.Report{}).Scopes(withFilter(f)).Count(&n).Error
	if err != nil {
		return 0, apperrors.Storage("count reports", err)
	}
	return n, nil
}

// PendingCountsAtLeast groups pending reports of a target type by target and
// keeps groups with at least min rows, highest count first, ties by target id.
func (s *ReportStore) PendingCountsAtLeast(ctx context.Context, targetType models.TargetType, min int64) ([]TargetCount, error) {
	var rows []TargetCount
	err := database.Conn(ctx, s.db).Model(&models.Report{}).
		Select("target_id, COUNT(*) AS report_count").
		Where("target_type = ? AND status = ?", targetType, models.StatusPending).
		Group("target_id").
		Having("COUNT(*) >= ?", min).
		Order("report_count DESC").Order("target_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Storage("aggregate pending reports", err)
	}
	return rows, nil
}

// UpdateStatus applies u to every report matched by scope whose status is in
// u.From and returns the number of rows moved.
func (s *ReportStore) UpdateStatus(ctx context.Context, scope func(*gorm.DB) *gorm.DB, u StatusUpdate) (int64, error) {
	values := map[string]interface{}{
		"status":     u.To,
		"updated_at": u.At,
	}
	if u.Action != "" {
		values["action_taken"] = u.Action
	}
	if u.AdminID != nil {
		values["resolved_by_admin_id"] = *u.AdminID
		values["resolved_at"] = u.At
	}

	result := database.Conn(ctx, s.db).Model(&models.Report{}).
		Scopes(scope).
		Where("status IN ?", u.From).
		Updates(values)
	if result.Error != nil {
		return 0, apperrors.Storage("update report status", result.Error)
	}
	return result.RowsAffected, nil
}
