// Package service implements module progression: completion tracking against
// the Profile Store with navigation computed from the static catalog.
package service

import (
	"context"
	"errors"
	"log/slog"

	"praxis/internal/catalog"
	platformmetrics "praxis/internal/platform/metrics"
	profilestore "praxis/internal/profile/store"
	dErrors "praxis/pkg/domain-errors"
	"praxis/pkg/platform/sentinel"
	"praxis/pkg/requestcontext"
)

// DashboardPath is the navigation target after the final module.
const DashboardPath = "/dashboard"

// ModuleStatus pairs a catalog module with the user's completion state.
type ModuleStatus struct {
	Module    *catalog.Module
	Completed bool
}

// Completion is the outcome of marking a module complete. Next is recomputed
// from the catalog on every call and never stored.
type Completion struct {
	Slug             string
	CompletedModules []string
	Next             string
}

// Service tracks per-user module completion.
type Service struct {
	track    *catalog.Catalog
	profiles profilestore.Store
	logger   *slog.Logger
	metrics  *platformmetrics.Metrics
}

// New constructs the progression service.
func New(track *catalog.Catalog, profiles profilestore.Store, logger *slog.Logger, metrics *platformmetrics.Metrics) (*Service, error) {
	if track == nil {
		return nil, errors.New("module catalog is required")
	}
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{track: track, profiles: profiles, logger: logger, metrics: metrics}, nil
}

// IsCompleted reports whether the user has completed the module slug.
func (s *Service) IsCompleted(ctx context.Context, userID, slug string) (bool, error) {
	if s.track.BySlug(slug) == nil {
		return false, dErrors.New(dErrors.CodeNotFound, "unknown module")
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return false, translateStoreErr(err, "failed to load profile")
	}
	return profile.HasCompleted(slug), nil
}

// MarkCompleted records the module as completed. Marking an already-completed
// module is a no-op that issues no write. The returned Completion carries the
// navigation target: the next module in track order, or the dashboard after
// the last one.
func (s *Service) MarkCompleted(ctx context.Context, userID, slug string) (Completion, error) {
	if s.track.BySlug(slug) == nil {
		return Completion{}, dErrors.New(dErrors.CodeNotFound, "unknown module")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return Completion{}, translateStoreErr(err, "failed to load profile")
	}

	completed := profile.Foundations.CompletedModules
	if !profile.HasCompleted(slug) {
		completed, err = s.profiles.AppendCompletedModule(ctx, userID, slug)
		if err != nil {
			return Completion{}, translateStoreErr(err, "failed to record module completion")
		}
		s.logger.InfoContext(ctx, "module completed",
			"user_id", userID,
			"module", slug,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.metrics.IncrementModulesCompleted()
	}

	return Completion{
		Slug:             slug,
		CompletedModules: completed,
		Next:             s.nextTarget(slug),
	}, nil
}

// List returns every module in track order with the user's completion state.
func (s *Service) List(ctx context.Context, userID string) ([]ModuleStatus, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load profile")
	}
	statuses := make([]ModuleStatus, 0, s.track.Len())
	for _, m := range s.track.All() {
		statuses = append(statuses, ModuleStatus{Module: m, Completed: profile.HasCompleted(m.Slug)})
	}
	return statuses, nil
}

// Get returns one module with the user's completion state and its navigation
// target.
func (s *Service) Get(ctx context.Context, userID, slug string) (ModuleStatus, string, error) {
	m := s.track.BySlug(slug)
	if m == nil {
		return ModuleStatus{}, "", dErrors.New(dErrors.CodeNotFound, "unknown module")
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ModuleStatus{}, "", translateStoreErr(err, "failed to load profile")
	}
	return ModuleStatus{Module: m, Completed: profile.HasCompleted(slug)}, s.nextTarget(slug), nil
}

// Resume returns where the user should land on the dashboard: the first
// incomplete module in track order, or the dashboard itself when the track is
// done.
func (s *Service) Resume(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", translateStoreErr(err, "failed to load profile")
	}
	for _, m := range s.track.All() {
		if !profile.HasCompleted(m.Slug) {
			return modulePath(m.Slug), nil
		}
	}
	return DashboardPath, nil
}

func (s *Service) nextTarget(slug string) string {
	if next := s.track.Next(slug); next != nil {
		return modulePath(next.Slug)
	}
	return DashboardPath
}

func modulePath(slug string) string { return "/modules/" + slug }

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
