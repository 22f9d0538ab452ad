// Package service implements in-place editing of the three onboarding-derived
// foundations fields, plus the dashboard readback of the foundations record.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	platformmetrics "praxis/internal/platform/metrics"
	profilemodels "praxis/internal/profile/models"
	profilestore "praxis/internal/profile/store"
	dErrors "praxis/pkg/domain-errors"
	"praxis/pkg/platform/sentinel"
	"praxis/pkg/requestcontext"
)

// Service edits and reads the foundations field group.
type Service struct {
	profiles profilestore.Store
	logger   *slog.Logger
	metrics  *platformmetrics.Metrics
}

// New constructs the foundations service.
func New(profiles profilestore.Store, logger *slog.Logger, metrics *platformmetrics.Metrics) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{profiles: profiles, logger: logger, metrics: metrics}, nil
}

// UpdateField persists a single foundations field. The value is trimmed; an
// empty result or one equal to the stored value is discarded without a write.
// That short-circuit is part of the contract, not an optimization: callers can
// rely on no-op edits never racing a concurrent sibling-field write.
//
// The write is a read-modify-write merge against the current snapshot, so two
// concurrent edits from different tabs can still race; last write wins.
func (s *Service) UpdateField(ctx context.Context, userID string, field profilemodels.Field, value string) (bool, error) {
	if userID == "" {
		return false, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, translateStoreErr(err, "failed to load profile")
	}
	if profile.Foundations.Value(field) == value {
		return false, nil
	}

	if err := s.profiles.UpdateFoundationsField(ctx, userID, field, value); err != nil {
		return false, translateStoreErr(err, "failed to update field")
	}

	s.logger.InfoContext(ctx, "foundations field updated",
		"user_id", userID,
		"field", string(field),
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementFieldEdits()
	return true, nil
}

// Overview returns the user's foundations record for the dashboard.
func (s *Service) Overview(ctx context.Context, userID string) (*profilemodels.Profile, error) {
	if userID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load profile")
	}
	return profile, nil
}

func translateStoreErr(err error, message string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "user profile not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUpstream, message)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, message)
	}
}
