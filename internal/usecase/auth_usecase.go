// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"jobtracker/internal/domain/entity"
)

// TokenTypeBearer is the token_type reported by a successful login.
const TokenTypeBearer = "bearer"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Bio       string
	Location  string
}

// LoginInput defines the data required for a user to log in.
// Identifier is an email or a username depending on deployment settings.
type LoginInput struct {
	Identifier string
	Password   string
}

// --- Output DTOs ---

// LoginOutput returns the generated access token after a successful login.
type LoginOutput struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
	ExpiresIn   time.Duration
	User        *entity.User
}

// AuthUsecase covers registration, credential login and per-request token resolution.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Resolve(ctx context.Context, token string) (*entity.User, error)
}
