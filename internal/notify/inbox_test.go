package notify

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInboxSinkStoresNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sink := NewInboxSink(db)
	ctx := context.Background()

	sink.Notify(ctx, 5, EventUserSuspended, map[string]interface{}{"duration_days": 7, "reason": "spam"})
	sink.Notify(ctx, 6, EventUserBanned, map[string]interface{}{"reason": "fraud"})

	var inbox []models.Notification
	require.NoError(t, db.Where("user_id = ? AND read_at IS NULL", 5).Find(&inbox).Error)
	require.Len(t, inbox, 1)
	assert.Equal(t, EventUserSuspended, inbox[0].EventType)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(inbox[0].Payload, &payload))
	assert.Equal(t, float64(7), payload["duration_days"])
}

func TestInboxSinkSwallowsFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	sink := NewInboxSink(db)
	assert.NotPanics(t, func() {
		sink.Notify(context.Background(), 5, EventUserBanned, map[string]interface{}{"reason": "fraud"})
	})
}
