package content_test

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content/opportunities"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content/posts"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrderAndLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	reg := content.NewRegistry(opportunities.New(db), posts.New(db))

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, models.TargetPost, all[0].TargetType())
	assert.Equal(t, models.TargetOpportunity, all[1].TargetType())

	_, ok := reg.Get(models.TargetUser)
	assert.False(t, ok)

	src, ok := reg.Get(models.TargetPost)
	require.True(t, ok)
	assert.Equal(t, models.TargetPost, src.TargetType())
	assert.Len(t, reg.Models(), 2)
}

func TestGormSourceExistsAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	reg := testutil.Registry(db)

	post := testutil.CreatePost(t, db, 1)
	opp := testutil.CreateOpportunity(t, db, 2)
	user := testutil.CreateUser(t, db, "reported")

	cases := []struct {
		targetType models.TargetType
		id         int64
	}{
		{models.TargetPost, post.ID},
		{models.TargetOpportunity, opp.ID},
		{models.TargetUser, user.ID},
	}

	for _, tc := range cases {
		t.Run(string(tc.targetType), func(t *testing.T) {
			src, ok := reg.Get(tc.targetType)
			require.True(t, ok)

			exists, err := src.Exists(ctx, tc.id)
			require.NoError(t, err)
			assert.True(t, exists)

			require.NoError(t, src.Delete(ctx, tc.id))

			exists, err = src.Exists(ctx, tc.id)
			require.NoError(t, err)
			assert.False(t, exists)

			assert.ErrorIs(t, src.Delete(ctx, tc.id), apperrors.ErrNotFound)
		})
	}
}
