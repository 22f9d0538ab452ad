package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"praxis/internal/profile/models"
)

// InMemory keeps profiles in memory for tests and local development. Profiles
// are created lazily on first read or write, mirroring the provider's
// behavior for users that exist but have no metadata yet.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewInMemory constructs an empty in-memory profile store.
func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[string]*models.Profile)}
}

func (s *InMemory) Get(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.profiles[userID]; ok {
		return p.Clone(), nil
	}
	return &models.Profile{UserID: userID}, nil
}

func (s *InMemory) UpdateOnboarding(_ context.Context, userID string, rec models.OnboardingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(userID)
	p.Foundations.Domain = rec.Domain
	p.Foundations.Constraint = rec.Constraint
	p.Foundations.Goal = rec.Goal
	p.OnboardingComplete = true
	completedAt := rec.CompletedAt
	p.OnboardingDate = &completedAt
	return nil
}

func (s *InMemory) AppendCompletedModule(_ context.Context, userID, slug string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(userID)
	if !slices.Contains(p.Foundations.CompletedModules, slug) {
		p.Foundations.CompletedModules = append(p.Foundations.CompletedModules, slug)
	}
	return slices.Clone(p.Foundations.CompletedModules), nil
}

func (s *InMemory) UpdateFoundationsField(_ context.Context, userID string, field models.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile(userID).Foundations.SetValue(field, value)
	return nil
}

func (s *InMemory) SetAccessKeyValidated(_ context.Context, userID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.profile(userID)
	p.AccessKeyValidated = true
	p.AccessKeyDate = &at
	return nil
}

// profile returns the live record for userID, creating it lazily.
// Callers must hold the write lock.
func (s *InMemory) profile(userID string) *models.Profile {
	p, ok := s.profiles[userID]
	if !ok {
		p = &models.Profile{UserID: userID}
		s.profiles[userID] = p
	}
	return p
}
