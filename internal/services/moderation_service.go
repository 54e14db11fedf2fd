package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/notify"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/store"
	"gorm.io/gorm"
)

// transition is a named bulk status move. reversal marks the one move allowed
// to leave a terminal state (keep-content undoing an earlier resolution).
type transition struct {
	name     string
	from     []models.ReportStatus
	to       models.ReportStatus
	reversal bool
}

var (
	transitionReview  = transition{name: "review", from: []models.ReportStatus{models.StatusPending}, to: models.StatusReviewed}
	transitionDismiss = transition{name: "dismiss", from: models.OpenStatuses, to: models.StatusDismissed}
	transitionResolve = transition{name: "resolve", from: models.OpenStatuses, to: models.StatusResolved}
	transitionKeep    = transition{
		name:     "keep_content",
		from:     []models.ReportStatus{models.StatusPending, models.StatusReviewed, models.StatusResolved},
		to:       models.StatusDismissed,
		reversal: true,
	}
)

func (t transition) allowed() bool {
	for _, from := range t.from {
		if from.CanTransitionTo(t.to) {
			continue
		}
		if t.reversal && from == models.StatusResolved && t.to == models.StatusDismissed {
			continue
		}
		return false
	}
	return true
}

// cascade is one atomic moderation step: an optional collaborator write
// before the report update, the update itself, and an optional write after.
type cascade struct {
	op     string
	t      transition
	scope  func(*gorm.DB) *gorm.DB
	action models.ActionTaken
	admin  *int64
	at     time.Time
	before func(ctx context.Context) error
	after  func(ctx context.Context) error
}

// ModerationService applies administrative decisions to reports. Every
// operation is set-based and idempotent: when nothing matches it returns 0.
type ModerationService struct {
	db        *gorm.DB
	reports   *store.ReportStore
	users     UserStore
	sanctions SanctionStore
	content   ContentLookup
	notifier  NotificationSink
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewModerationService(
	db *gorm.DB,
	reports *store.ReportStore,
	users UserStore,
	sanctions SanctionStore,
	content ContentLookup,
	notifier NotificationSink,
	m *metrics.Metrics,
) *ModerationService {
	return &ModerationService{
		db:        db,
		reports:   reports,
		users:     users,
		sanctions: sanctions,
		content:   content,
		notifier:  notifier,
		metrics:   m,
		now:       time.Now,
	}
}

// Dismiss closes the open reports against a target without action. It
// deliberately does not stamp the resolving admin or time.
func (s *ModerationService) Dismiss(ctx context.Context, targetType models.TargetType, targetID int64) (int64, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return 0, err
	}
	return s.run(ctx, cascade{
		op:    "dismiss",
		t:     transitionDismiss,
		scope: store.ForTarget(targetType, targetID),
		at:    s.now(),
	})
}

// MarkReviewed moves pending reports against a target to REVIEWED.
func (s *ModerationService) MarkReviewed(ctx context.Context, targetType models.TargetType, targetID int64) (int64, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return 0, err
	}
	return s.run(ctx, cascade{
		op:    "review",
		t:     transitionReview,
		scope: store.ForTarget(targetType, targetID),
		at:    s.now(),
	})
}

// Resolve closes the open reports against a target as CONTENT_REMOVED.
func (s *ModerationService) Resolve(ctx context.Context, targetType models.TargetType, targetID, adminID int64) (int64, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return 0, err
	}
	if err := validateID("admin id", adminID); err != nil {
		return 0, err
	}
	return s.run(ctx, cascade{
		op:     "resolve",
		t:      transitionResolve,
		scope:  store.ForTarget(targetType, targetID),
		action: models.ActionContentRemoved,
		admin:  &adminID,
		at:     s.now(),
	})
}

// KeepContent dismisses open and previously resolved reports against a
// target, reversing an earlier removal decision.
func (s *ModerationService) KeepContent(ctx context.Context, targetType models.TargetType, targetID int64) (int64, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return 0, err
	}
	return s.run(ctx, cascade{
		op:     "keep_content",
		t:      transitionKeep,
		scope:  store.ForTarget(targetType, targetID),
		action: models.ActionNone,
		at:     s.now(),
	})
}

// DeleteContentCascade resolves the open reports against a target and then
// deletes the target itself. Both happen in one transaction.
func (s *ModerationService) DeleteContentCascade(ctx context.Context, targetType models.TargetType, targetID, adminID int64) (int64, error) {
	if err := validateTarget(targetType, targetID); err != nil {
		return 0, err
	}
	if err := validateID("admin id", adminID); err != nil {
		return 0, err
	}
	source, ok := s.content.Get(targetType)
	if !ok {
		return 0, apperrors.Validation("no content source registered for %s", targetType)
	}

	return s.run(ctx, cascade{
		op:     "delete_content",
		t:      transitionResolve,
		scope:  store.ForTarget(targetType, targetID),
		action: models.ActionContentRemoved,
		admin:  &adminID,
		at:     s.now(),
		after: func(ctx context.Context) error {
			return source.Delete(ctx, targetID)
		},
	})
}

// BanUser bans a user permanently and resolves every open report against
// that user's account.
func (s *ModerationService) BanUser(ctx context.Context, userID, adminID int64, reason string) (int64, error) {
	if err := validateID("user id", userID); err != nil {
		return 0, err
	}
	if err := validateID("admin id", adminID); err != nil {
		return 0, err
	}
	if err := validateReason(reason); err != nil {
		return 0, err
	}

	at := s.now()
	var user *models.User
	closed, err := s.run(ctx, cascade{
		op:     "ban_user",
		t:      transitionResolve,
		scope:  store.ForTarget(models.TargetUser, userID),
		action: models.ActionUserBanned,
		admin:  &adminID,
		at:     at,
		before: func(ctx context.Context) error {
			var err error
			if user, err = s.users.Get(ctx, userID); err != nil {
				return err
			}
			return s.sanctions.ApplyBan(ctx, userID, adminID, reason, at)
		},
	})
	if err != nil {
		return 0, err
	}

	s.metrics.IncSanction("ban")
	slog.Info("user banned",
		"user_id", userID,
		"username", user.Username,
		"admin_id", adminID,
		"closed", closed,
	)
	s.notify(ctx, userID, notify.EventUserBanned, map[string]interface{}{
		"reason":         reason,
		"banned_at":      at,
		"closed_reports": closed,
	})
	return closed, nil
}

// SuspendUser suspends a user for durationDays. Only the report named by
// reportID, if any, is closed; other reports against the user stay open.
func (s *ModerationService) SuspendUser(ctx context.Context, userID, adminID int64, reason string, durationDays int, reportID *int64) (int64, error) {
	if err := validateID("user id", userID); err != nil {
		return 0, err
	}
	if err := validateID("admin id", adminID); err != nil {
		return 0, err
	}
	if err := validateReason(reason); err != nil {
		return 0, err
	}
	if err := validateDuration(durationDays); err != nil {
		return 0, err
	}

	at := s.now()
	var user *models.User
	c := cascade{
		op:     "suspend_user",
		t:      transitionResolve,
		action: models.ActionUserSuspended,
		admin:  &adminID,
		at:     at,
		before: func(ctx context.Context) error {
			var err error
			if user, err = s.users.Get(ctx, userID); err != nil {
				return err
			}
			if err := s.sanctions.ApplySuspension(ctx, userID, adminID, reason, durationDays, at); err != nil {
				return err
			}
			if reportID != nil {
				if _, err := s.reports.Get(ctx, *reportID); err != nil {
					return err
				}
			}
			return nil
		},
	}
	if reportID != nil {
		c.scope = store.ByID(*reportID)
	}

	closed, err := s.run(ctx, c)
	if err != nil {
		return 0, err
	}

	until := models.SuspensionEnd(at, durationDays)
	s.metrics.IncSanction("suspension")
	slog.Info("user suspended",
		"user_id", userID,
		"username", user.Username,
		"admin_id", adminID,
		"days", durationDays,
		"closed", closed,
	)
	s.notify(ctx, userID, notify.EventUserSuspended, map[string]interface{}{
		"reason":          reason,
		"suspended_until": until,
		"duration_days":   durationDays,
	})
	return closed, nil
}

// run executes c in one transaction: before, the report update, after. Any
// error rolls back all three.
func (s *ModerationService) run(ctx context.Context, c cascade) (int64, error) {
	if !c.t.allowed() {
		return 0, fmt.Errorf("transition %s to %s not permitted by status graph", c.t.name, c.t.to)
	}

	var closed int64
	err := database.InTx(ctx, s.db, func(ctx context.Context) error {
		if c.before != nil {
			if err := c.before(ctx); err != nil {
				return err
			}
		}
		if c.scope != nil {
			n, err := s.reports.UpdateStatus(ctx, c.scope, store.StatusUpdate{
				From:    c.t.from,
				To:      c.t.to,
				Action:  c.action,
				AdminID: c.admin,
				At:      c.at,
			})
			if err != nil {
				return err
			}
			closed = n
		}
		if c.after != nil {
			return c.after(ctx)
		}
		return nil
	})
	if err != nil {
		return 0, s.fail(c.op, err)
	}

	action := c.action
	if action == "" {
		action = models.ActionNone
	}
	s.metrics.AddReportsTransitioned(string(c.t.to), string(action), closed)
	slog.Info("reports transitioned", "action", c.op, "status", c.t.to, "count", closed)
	return closed, nil
}

func (s *ModerationService) notify(ctx context.Context, userID int64, event string, payload map[string]interface{}) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(context.WithoutCancel(ctx), userID, event, payload)
}

func (s *ModerationService) fail(op string, err error) error {
	err = apperrors.Ensure(op, err)
	if isStorage(err) {
		slog.Error("moderation action failed", "action", op, "error", err)
	} else {
		slog.Warn("moderation action rejected", "action", op, "error", err)
	}
	return err
}

func isStorage(err error) bool {
	return errors.Is(err, apperrors.ErrStorage)
}

