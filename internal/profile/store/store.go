// Package store defines the narrow repository interface over the external
// Profile Store. Operations are field-group scoped (onboarding, module
// progress, a single foundations field, access key flags) rather than a
// generic metadata merge, which keeps the lost-update surface small when
// independent call sites write concurrently.
//
// Error Contract:
// - Get returns sentinel.ErrNotFound when the user is unknown to the provider.
// - Writes return wrapped sentinel.ErrUnavailable for provider outages.
// - Reads are possibly-stale snapshots; callers must not assume their own
//   read-modify-write sequence is atomic. The provider serializes writes;
//   last write wins at field-group granularity.
package store

import (
	"context"
	"time"

	"praxis/internal/profile/models"
)

// Store is the repository interface over the external Profile Store.
type Store interface {
	// Get returns a snapshot of the user's profile sub-document. Users that
	// exist but have never been written to get a zero-valued profile.
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// UpdateOnboarding writes all three foundations answers and marks
	// onboarding complete in a single field-group write.
	UpdateOnboarding(ctx context.Context, userID string, rec models.OnboardingRecord) error

	// AppendCompletedModule appends slug to the completed set. Appending an
	// already-present slug is a no-op. Returns the updated set.
	AppendCompletedModule(ctx context.Context, userID, slug string) ([]string, error)

	// UpdateFoundationsField persists a single foundations field, leaving the
	// other two untouched.
	UpdateFoundationsField(ctx context.Context, userID string, field models.Field, value string) error

	// SetAccessKeyValidated marks the access-key gate as passed.
	SetAccessKeyValidated(ctx context.Context, userID string, at time.Time) error
}
