package store

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	member := testutil.CreateUser(t, db, "member")
	admin := testutil.CreateAdmin(t, db, "root")

	ok, err := users.Exists(ctx, member.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Exists(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := users.Get(ctx, member.ID)
	require.NoError(t, err)
	assert.Equal(t, "member", got.Username)

	_, err = users.Get(ctx, 9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	isAdmin, err := users.IsAdmin(ctx, admin.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = users.IsAdmin(ctx, member.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	isAdmin, err = users.IsAdmin(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestSanctionStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	sanctions := NewSanctionStore(db)
	ctx := context.Background()
	at := time.Date(2026, 5, 1, 8, 30, 0, 0, time.UTC)

	u := testutil.CreateUser(t, db, "offender")

	require.NoError(t, sanctions.ApplySuspension(ctx, u.ID, 9, "flooding", 3, at))
	var got models.User
	require.NoError(t, db.First(&got, u.ID).Error)
	assert.True(t, got.IsSuspended)
	assert.False(t, got.IsBanned)
	assert.Equal(t, "flooding", got.SuspensionReason)
	require.NotNil(t, got.SuspendedUntil)
	assert.True(t, got.SuspendedUntil.Equal(at.Add(72*time.Hour)))
	require.NotNil(t, got.SuspendedByAdminID)
	assert.Equal(t, int64(9), *got.SuspendedByAdminID)

	require.NoError(t, sanctions.ApplyBan(ctx, u.ID, 9, "ban evasion", at))
	require.NoError(t, db.First(&got, u.ID).Error)
	assert.True(t, got.IsBanned)
	assert.Equal(t, "ban evasion", got.BannedReason)
	require.NotNil(t, got.BannedAt)
	assert.True(t, got.BannedAt.Equal(at))

	assert.ErrorIs(t, sanctions.ApplyBan(ctx, 9999, 9, "nobody", at), apperrors.ErrNotFound)
	assert.ErrorIs(t, sanctions.ApplySuspension(ctx, 9999, 9, "nobody", 1, at), apperrors.ErrNotFound)
}
