package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventUserBanned    = "user_banned"
	EventUserSuspended = "user_suspended"
)

// InboxSink writes notifications to the notifications table. Failures are
// logged and dropped; callers never see them.
type InboxSink struct {
	db *gorm.DB
}

func NewInboxSink(db *gorm.DB) *InboxSink {
	return &InboxSink{db: db}
}

func (s *InboxSink) Notify(ctx context.Context, userID int64, eventType string, payload map[string]interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		slog.Warn("notification payload not serializable", "user_id", userID, "event", eventType, "error", err)
		b = []byte("{}")
	}

	n := models.Notification{
		UserID:    userID,
		EventType: eventType,
		Payload:   datatypes.JSON(b),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		slog.Error("notification dropped", "user_id", userID, "event", eventType, "error", err)
	}
}
