// Package service implements the onboarding wizard flow: three sequential
// prompts whose answers finalize into a one-time Profile Store write.
package service

import (
	"context"
	"errors"
	"log/slog"

	"praxis/internal/onboarding/models"
	platformmetrics "praxis/internal/platform/metrics"
	profilemodels "praxis/internal/profile/models"
	profilestore "praxis/internal/profile/store"
	dErrors "praxis/pkg/domain-errors"
	"praxis/pkg/platform/sentinel"
	"praxis/pkg/requestcontext"
)

// DashboardPath is where clients are redirected after finalization.
const DashboardPath = "/dashboard"

// Result describes the wizard position after an operation. Redirect is
// non-empty only once the flow is finalized.
type Result struct {
	State    models.State
	Redirect string
}

// Service runs the onboarding state machine against the Profile Store.
type Service struct {
	profiles profilestore.Store
	logger   *slog.Logger
	metrics  *platformmetrics.Metrics
}

// New constructs the onboarding service.
func New(profiles profilestore.Store, logger *slog.Logger, metrics *platformmetrics.Metrics) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{profiles: profiles, logger: logger, metrics: metrics}, nil
}

// Advance moves the wizard forward one step. A blank trimmed answer for the
// current step is rejected with a validation error and leaves the step
// unchanged. Advancing past the final step finalizes: all three answers must
// be present and are written to the Profile Store together with the
// completion flag and date.
//
// Profile Store failures during finalization surface to the caller; the
// dashboard depends on the write having landed, so masking them would strand
// the user.
func (s *Service) Advance(ctx context.Context, userID string, step int, answers models.Answers) (Result, error) {
	state, ok := models.ParseStep(step)
	if !ok {
		return Result{}, dErrors.New(dErrors.CodeBadRequest, "step must be 0, 1 or 2")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Result{}, translateStoreErr(err, "failed to load profile")
	}
	if profile.OnboardingComplete {
		// Finalization is one-time and never reversed; a stale client asking
		// to advance again just gets sent to the dashboard.
		return Result{State: models.StateFinalized, Redirect: DashboardPath}, nil
	}

	next, ok := models.Advance(state, answers)
	if !ok {
		return Result{}, dErrors.New(dErrors.CodeValidation, "answer is required to continue")
	}
	if next != models.StateFinalized {
		return Result{State: next}, nil
	}

	// The step index is client-held, so a request can name the final step
	// without ever having passed the earlier ones. Finalizing writes all
	// three answers; an incomplete set means the flow was not traversed.
	if !answers.Complete() {
		return Result{}, dErrors.New(dErrors.CodeValidation, "all answers are required to finish")
	}

	return s.finalize(ctx, userID, answers.Trimmed())
}

// Skip finalizes immediately, substituting the Unset placeholder for every
// answer not yet filled. Same write contract as normal completion.
func (s *Service) Skip(ctx context.Context, userID string, answers models.Answers) (Result, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Result{}, translateStoreErr(err, "failed to load profile")
	}
	if profile.OnboardingComplete {
		return Result{State: models.StateFinalized, Redirect: DashboardPath}, nil
	}

	return s.finalize(ctx, userID, answers.WithUnsetDefaults())
}

func (s *Service) finalize(ctx context.Context, userID string, answers models.Answers) (Result, error) {
	rec := profilemodels.OnboardingRecord{
		Domain:      answers.Domain,
		Constraint:  answers.Constraint,
		Goal:        answers.Goal,
		CompletedAt: requestcontext.Now(ctx),
	}
	if err := s.profiles.UpdateOnboarding(ctx, userID, rec); err != nil {
		return Result{}, translateStoreErr(err, "failed to finalize onboarding")
	}

	s.logger.InfoContext(ctx, "onboarding finalized",
		"user_id", userID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementOnboardingCompleted()

	return Result{State: models.StateFinalized, Redirect: DashboardPath}, nil
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
