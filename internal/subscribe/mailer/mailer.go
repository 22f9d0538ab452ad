// Package mailer wraps the external mailing-list provider. Forwarding is
// best-effort by contract; callers log failures and never surface them.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"praxis/pkg/platform/sentinel"
)

// Mailer adds a subscriber to a provider list.
type Mailer interface {
	AddToList(ctx context.Context, email, listID, source string) error
}

// HTTPMailer talks to the provider's REST API.
type HTTPMailer struct {
	base   string
	apiKey string
	client *http.Client
}

// NewHTTP constructs a provider client.
func NewHTTP(base, apiKey string) *HTTPMailer {
	return &HTTPMailer{
		base:   base,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *HTTPMailer) AddToList(ctx context.Context, email, listID, source string) error {
	body, err := json.Marshal(map[string]string{
		"email":  email,
		"source": source,
	})
	if err != nil {
		return fmt.Errorf("encode subscriber: %w", err)
	}

	url := m.base + "/v1/lists/" + listID + "/subscribers"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build subscriber request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("add to list %s: %w", listID, sentinel.ErrUnavailable)
	}
	defer resp.Body.Close()

	// Providers answer 409 for an already-subscribed address; that is success
	// for our purposes.
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return fmt.Errorf("provider returned %d for list %s", resp.StatusCode, listID)
	}
	return nil
}

// LogOnly is the degraded mailer used when no provider credential is
// configured: submissions are logged and nothing is forwarded.
type LogOnly struct {
	logger *slog.Logger
}

// NewLogOnly constructs the log-only mailer.
func NewLogOnly(logger *slog.Logger) *LogOnly {
	return &LogOnly{logger: logger}
}

func (m *LogOnly) AddToList(ctx context.Context, email, listID, source string) error {
	m.logger.InfoContext(ctx, "mailing provider not configured, logging submission only",
		"email", email,
		"list_id", listID,
		"source", source,
	)
	return nil
}
