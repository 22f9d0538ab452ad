// Package sessiontoken validates the session JWTs minted by the identity
// provider. The provider owns sign-in entirely; this service only needs to
// verify a token and extract the user it names.
package sessiontoken

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"praxis/internal/platform/middleware"
	dErrors "praxis/pkg/domain-errors"
)

// Claims represents the JWT claims carried by provider session tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Validator verifies session tokens. It implements middleware.SessionValidator.
type Validator struct {
	signingKey []byte
}

// NewValidator constructs a Validator for the shared signing key.
func NewValidator(signingKey string) *Validator {
	return &Validator{signingKey: []byte(signingKey)}
}

// ValidateToken parses and verifies a session token.
func (v *Validator) ValidateToken(tokenString string) (*middleware.SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if claims.UserID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token carries no user")
	}

	return &middleware.SessionClaims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
	}, nil
}
