// Package accesskey implements the gate step before onboarding: a single
// configured key that unlocks the product for a signed-in user. The key is
// stored as a bcrypt hash; the plaintext never reaches configuration.
package accesskey

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	profilestore "praxis/internal/profile/store"
	dErrors "praxis/pkg/domain-errors"
	"praxis/pkg/platform/sentinel"
	"praxis/pkg/requestcontext"
)

// HashKey creates a bcrypt hash of a gate key, for provisioning the
// configured hash.
func HashKey(key string) (string, error) {
	if key == "" {
		return "", dErrors.New(dErrors.CodeValidation, "key cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeValidation, "key is too long")
		}
		return "", err
	}
	return string(hashed), nil
}

// Service validates access keys and records the gate flags on the profile.
type Service struct {
	keyHash  string
	profiles profilestore.Store
	logger   *slog.Logger
}

// NewService constructs the access key service. An empty hash disables the
// gate; every validation attempt then fails.
func NewService(keyHash string, profiles profilestore.Store, logger *slog.Logger) (*Service, error) {
	if profiles == nil {
		return nil, errors.New("profile store is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{keyHash: keyHash, profiles: profiles, logger: logger}, nil
}

// Validate checks the candidate key against the configured hash and, on first
// success, marks the profile as gate-passed. Re-validating an
// already-validated profile is a no-op success: the flag is set once and
// never unset.
func (s *Service) Validate(ctx context.Context, userID, candidate string) error {
	if userID == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return dErrors.New(dErrors.CodeValidation, "access key is required")
	}
	if s.keyHash == "" || bcrypt.CompareHashAndPassword([]byte(s.keyHash), []byte(candidate)) != nil {
		return dErrors.New(dErrors.CodeForbidden, "invalid access key")
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return translateStoreErr(err)
	}
	if profile.AccessKeyValidated {
		return nil
	}

	if err := s.profiles.SetAccessKeyValidated(ctx, userID, requestcontext.Now(ctx)); err != nil {
		return translateStoreErr(err)
	}
	s.logger.InfoContext(ctx, "access key validated",
		"user_id", userID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func translateStoreErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "user profile not found")
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.Wrap(err, dErrors.CodeUpstream, "profile store unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record access key validation")
	}
}
