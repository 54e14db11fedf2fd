package services

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

// UserStore resolves report and sanction subjects.
type UserStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
	Get(ctx context.Context, id int64) (*models.User, error)
}

// SanctionStore records bans and suspensions. Implementations must join the
// transaction carried by ctx.
type SanctionStore interface {
	ApplyBan(ctx context.Context, userID, adminID int64, reason string, at time.Time) error
	ApplySuspension(ctx context.Context, userID, adminID int64, reason string, durationDays int, at time.Time) error
}

// ContentLookup resolves the content source for a target type.
type ContentLookup interface {
	Get(t models.TargetType) (content.Source, bool)
}

// NotificationSink delivers best-effort user notifications.
type NotificationSink interface {
	Notify(ctx context.Context, userID int64, eventType string, payload map[string]interface{})
}
