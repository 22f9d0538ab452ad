package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praxis/internal/subscribe/models"
)

func TestInMemoryCreateAndRecent(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, s.Create(ctx, &models.Submission{
			ID:        string(rune('1' + i)),
			Email:     email,
			Source:    models.SourceSignalPage,
			ListID:    "signal",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	recent, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c@example.com", recent[0].Email, "newest first")
	assert.Equal(t, "b@example.com", recent[1].Email)

	all, err := s.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestInMemoryRecentCopiesRecords(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	require.NoError(t, s.Create(ctx, &models.Submission{ID: "1", Email: "a@example.com"}))

	recent, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	recent[0].Email = "mutated"

	fresh, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", fresh[0].Email)
}
