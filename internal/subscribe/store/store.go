// Package store persists the subscription submission log. The log exists for
// operational visibility only; user-facing success never depends on it.
package store

import (
	"context"

	"praxis/internal/subscribe/models"
)

// Store records accepted submissions.
type Store interface {
	// Create appends a submission to the log.
	Create(ctx context.Context, sub *models.Submission) error

	// Recent returns the most recent submissions, newest first.
	Recent(ctx context.Context, limit int) ([]*models.Submission, error)
}
