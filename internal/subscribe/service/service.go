// Package service implements the subscribe flow as a two-phase contract:
// validate-and-acknowledge synchronously, then best-effort forwarding to the
// mailing-list provider whose outcome is never surfaced to the caller.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	platformmetrics "praxis/internal/platform/metrics"
	"praxis/internal/subscribe/mailer"
	"praxis/internal/subscribe/models"
	"praxis/internal/subscribe/store"
	dErrors "praxis/pkg/domain-errors"
	"praxis/pkg/requestcontext"
)

const forwardTimeout = 10 * time.Second

// ListRouting maps source-tag prefixes to provider list IDs.
type ListRouting struct {
	SignalListID string
	OSListID     string
}

// Service accepts subscription submissions.
type Service struct {
	submissions store.Store
	mailer      mailer.Mailer
	lists       ListRouting
	logger      *slog.Logger
	metrics     *platformmetrics.Metrics

	forwards sync.WaitGroup
}

// New constructs the subscribe service.
func New(submissions store.Store, m mailer.Mailer, lists ListRouting, logger *slog.Logger, metrics *platformmetrics.Metrics) (*Service, error) {
	if submissions == nil {
		return nil, errors.New("submission store is required")
	}
	if m == nil {
		return nil, errors.New("mailer is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{
		submissions: submissions,
		mailer:      m,
		lists:       lists,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Subscribe validates and acknowledges a submission. Once validation passes
// the call always succeeds: the submission is recorded for operational
// visibility and forwarded to the provider in the background. Neither the
// record write nor the forward can fail the caller; user-facing success must
// not depend on third-party availability.
func (s *Service) Subscribe(ctx context.Context, email, source string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		s.metrics.IncrementSubscriptionsRejected()
		return dErrors.New(dErrors.CodeValidation, "Invalid email")
	}
	if source = strings.TrimSpace(source); source == "" {
		source = "unknown"
	}

	sub := &models.Submission{
		ID:        uuid.NewString(),
		Email:     email,
		Source:    source,
		ListID:    s.listID(source),
		CreatedAt: requestcontext.Now(ctx),
	}

	if err := s.submissions.Create(ctx, sub); err != nil {
		// The log is operational visibility only; losing an entry must not
		// fail the submission.
		s.logger.ErrorContext(ctx, "failed to record subscription",
			"email", sub.Email,
			"source", sub.Source,
			"error", err,
		)
	}
	s.logger.InfoContext(ctx, "subscription accepted",
		"email", sub.Email,
		"source", sub.Source,
		"list_id", sub.ListID,
		"request_id", requestcontext.RequestID(ctx),
	)
	s.metrics.IncrementSubscriptionsAccepted()

	s.forwards.Add(1)
	go s.forward(context.WithoutCancel(ctx), sub)

	return nil
}

// forward runs detached from the request so a slow provider cannot hold the
// response. Failures are logged and counted, never surfaced.
func (s *Service) forward(ctx context.Context, sub *models.Submission) {
	defer s.forwards.Done()

	ctx, cancel := context.WithTimeout(ctx, forwardTimeout)
	defer cancel()

	if err := s.mailer.AddToList(ctx, sub.Email, sub.ListID, sub.Source); err != nil {
		s.logger.WarnContext(ctx, "provider forward failed",
			"email", sub.Email,
			"list_id", sub.ListID,
			"error", err,
		)
		s.metrics.IncrementSubscriptionForwardFails()
	}
}

// Recent exposes the submission log for operational use.
func (s *Service) Recent(ctx context.Context, limit int) ([]*models.Submission, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	subs, err := s.submissions.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read submission log")
	}
	return subs, nil
}

// Drain blocks until in-flight provider forwards finish. Called on shutdown
// and by tests that need deterministic forwarding.
func (s *Service) Drain() {
	s.forwards.Wait()
}

func (s *Service) listID(source string) string {
	if strings.HasPrefix(source, "os-") {
		return s.lists.OSListID
	}
	return s.lists.SignalListID
}
