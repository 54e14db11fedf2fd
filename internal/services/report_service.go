package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
)

// ReportService records new reports and serves the flat report listings.
type ReportService struct {
	reports *store.ReportStore
	users   UserStore
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewReportService(reports *store.ReportStore, users UserStore, m *metrics.Metrics) *ReportService {
	return &ReportService{
		reports: reports,
		users:   users,
		metrics: m,
		now:     time.Now,
	}
}

// Create files a PENDING report. Repeat reports from the same reporter on the
// same target are accepted.
func (s *ReportService) Create(ctx context.Context, reporterID int64, targetType models.TargetType, reason string, targetID int64) (*models.Report, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return nil, err
	}
	if err := validateReason(reason); err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, reporterID)
	if err != nil {
		return nil, s.fail("check reporter", err)
	}
	if !exists {
		return nil, apperrors.NotFound("user", reporterID)
	}

	now := s.now()
	report := &models.Report{
		ReporterID:  reporterID,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      reason,
		Status:      models.StatusPending,
		ActionTaken: models.ActionNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, s.fail("create report", err)
	}

	s.metrics.IncReportSubmitted(string(targetType))
	slog.Info("report created",
		"report_id", report.ID,
		"reporter_id", reporterID,
		"target_type", targetType,
		"target_id", targetID,
	)
	return report, nil
}

func (s *ReportService) ListPending(ctx context.Context) ([]models.Report, error) {
	return s.list(ctx, store.ReportFilter{Status: models.StatusPending})
}

func (s *ReportService) ListAll(ctx context.Context) ([]models.Report, error) {
	return s.list(ctx, store.ReportFilter{})
}

func (s *ReportService) ListByStatus(ctx context.Context, status models.ReportStatus) ([]models.Report, error) {
	if !status.Valid() {
		return nil, apperrors.Validation("invalid status %q", status)
	}
	return s.list(ctx, store.ReportFilter{Status: status})
}

// PendingCount returns how many reports against one target are still pending.
func (s *ReportService) PendingCount(ctx context.Context, targetType models.TargetType, targetID int64) (int64, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return 0, err
	}
	n, err := s.reports.Count(ctx, store.ReportFilter{
		Status:     models.StatusPending,
		TargetType: targetType,
		TargetID:   targetID,
	})
	if err != nil {
		return 0, s.fail("count pending reports", err)
	}
	return n, nil
}

func (s *ReportService) list(ctx context.Context, f store.ReportFilter) ([]models.Report, error) {
	reports, err := s.reports.List(ctx, f)
	if err != nil {
		return nil, s.fail("list reports", err)
	}
	return reports, nil
}

func (s *ReportService) fail(op string, err error) error {
	err = apperrors.Ensure(op, err)
	if isStorage(err) {
		slog.Error("report operation failed", "action", op, "error", err)
	}
	return err
}
