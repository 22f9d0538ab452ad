//go:build integration

package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praxis/internal/profile/models"
	"praxis/pkg/testutil/containers"
)

func TestCachedStoreAgainstRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	rc := containers.NewRedisContainer(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	inner := NewInMemory()
	cached := NewCached(inner, rc.Client, 30*time.Second, logger)

	t.Run("read-through caches the snapshot", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		rec := models.OnboardingRecord{Domain: "BJJ", Constraint: "Focus", Goal: "Win states", CompletedAt: time.Now().UTC()}
		require.NoError(t, inner.UpdateOnboarding(ctx, "user_1", rec))

		p, err := cached.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "BJJ", p.Foundations.Domain)

		keys, err := rc.Client.Keys(ctx, "praxis:profile:*").Result()
		require.NoError(t, err)
		assert.Len(t, keys, 1)
	})

	t.Run("writes invalidate the cached snapshot", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		_, err := cached.Get(ctx, "user_2")
		require.NoError(t, err)

		require.NoError(t, cached.UpdateFoundationsField(ctx, "user_2", models.FieldDomain, "Climbing"))

		p, err := cached.Get(ctx, "user_2")
		require.NoError(t, err)
		assert.Equal(t, "Climbing", p.Foundations.Domain, "stale snapshot must not survive a write")
	})

	t.Run("module completion is visible after invalidation", func(t *testing.T) {
		require.NoError(t, rc.FlushAll(ctx))
		_, err := cached.Get(ctx, "user_3")
		require.NoError(t, err)

		_, err = cached.AppendCompletedModule(ctx, "user_3", "the-blueprint")
		require.NoError(t, err)

		p, err := cached.Get(ctx, "user_3")
		require.NoError(t, err)
		assert.True(t, p.HasCompleted("the-blueprint"))
	})
}
