package service

import (
	"time"

	"jobtracker/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, unexpected algorithm, malformed structure or expiry.
var ErrInvalidToken = errors.New("invalid token")

// Claims defines the claims carried by an access token. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, errors.Wrap(ErrInvalidToken, "subject is not a user id")
	}

	return id, nil
}

// IssuedToken is a signed access token and its absolute expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken signs a token for the user that expires after ttl.
	GenerateToken(userID uuid.UUID, ttl time.Duration) (*IssuedToken, error)

	// ValidateToken checks signature, algorithm and expiry. Failures wrap ErrInvalidToken.
	ValidateToken(tokenString string) (*Claims, error)
}
