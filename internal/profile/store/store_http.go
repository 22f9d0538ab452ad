package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"praxis/internal/profile/models"
	"praxis/pkg/platform/sentinel"
)

// HTTPStore talks to the identity provider's user metadata API. The provider
// merges partial metadata with last-write-wins semantics at the granularity of
// the JSON document each caller sends, so every write method sends only its
// own field group.
type HTTPStore struct {
	base   string
	secret string
	client *http.Client
}

// NewHTTP constructs a profile store backed by the provider's REST API.
func NewHTTP(base, secret string) *HTTPStore {
	return &HTTPStore{
		base:   base,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// metadataEnvelope matches the provider's user metadata wire shape.
type metadataEnvelope struct {
	PublicMetadata models.Profile `json:"publicMetadata"`
}

func (s *HTTPStore) Get(ctx context.Context, userID string) (*models.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.metadataURL(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("user %s: %w", userID, sentinel.ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("provider returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("provider returned unexpected status %d", resp.StatusCode)
	}

	var envelope metadataEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p := envelope.PublicMetadata
	p.UserID = userID
	return &p, nil
}

func (s *HTTPStore) UpdateOnboarding(ctx context.Context, userID string, rec models.OnboardingRecord) error {
	// The foundations group is written whole, so the current completed list
	// rides along from a fresh snapshot. A concurrent module completion can
	// still lose this race; that is the provider's documented last-write-wins
	// behavior and onboarding precedes module work in practice.
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	return s.patch(ctx, userID, map[string]any{
		"onboardingComplete": true,
		"onboardingDate":     rec.CompletedAt,
		"foundations": models.Foundations{
			Domain:           rec.Domain,
			Constraint:       rec.Constraint,
			Goal:             rec.Goal,
			CompletedModules: current.Foundations.CompletedModules,
		},
	})
}

func (s *HTTPStore) AppendCompletedModule(ctx context.Context, userID, slug string) ([]string, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current.HasCompleted(slug) {
		return current.Foundations.CompletedModules, nil
	}
	updated := current.Foundations
	updated.CompletedModules = append(updated.CompletedModules, slug)
	if err := s.patch(ctx, userID, map[string]any{"foundations": updated}); err != nil {
		return nil, err
	}
	return updated.CompletedModules, nil
}

func (s *HTTPStore) UpdateFoundationsField(ctx context.Context, userID string, field models.Field, value string) error {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	updated := current.Foundations
	updated.SetValue(field, value)
	return s.patch(ctx, userID, map[string]any{"foundations": updated})
}

func (s *HTTPStore) SetAccessKeyValidated(ctx context.Context, userID string, at time.Time) error {
	return s.patch(ctx, userID, map[string]any{
		"accessKeyValidated": true,
		"accessKeyDate":      at,
	})
}

// patch sends a partial public-metadata update for one field group.
func (s *HTTPStore) patch(ctx context.Context, userID string, publicMetadata map[string]any) error {
	body, err := json.Marshal(map[string]any{"publicMetadata": publicMetadata})
	if err != nil {
		return fmt.Errorf("encode metadata patch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.metadataURL(userID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build metadata patch: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("patch profile: %w", sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("user %s: %w", userID, sentinel.ErrNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("provider returned %d: %w", resp.StatusCode, sentinel.ErrUnavailable)
	case resp.StatusCode >= 400:
		return fmt.Errorf("provider rejected patch with status %d", resp.StatusCode)
	}
	return nil
}

func (s *HTTPStore) metadataURL(userID string) string {
	return s.base + "/v1/users/" + userID + "/metadata"
}
