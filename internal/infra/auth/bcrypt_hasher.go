// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"jobtracker/config"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/service"
	"jobtracker/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// maxBcryptPasswordBytes is the longest input bcrypt accepts.
const maxBcryptPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher builds the hasher from auth.bcryptCost and the optional passwordStrength policy.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return newBcryptHasher(cost, cfg.PasswordStrength)
}

// NewBcryptHasherWithCost returns a hasher with no strength policy. Tests use a low cost to stay fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return newBcryptHasher(cost, nil)
}

func newBcryptHasher(cost int, policy *config.PasswordStrengthConfig) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.checkStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domainerrors.ErrPasswordStrength.WithDetails(
				fmt.Sprintf("password must be at most %d bytes", maxBcryptPasswordBytes))
		}

		return "", errors.Wrap(err, "bcrypt.GenerateFromPassword")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	// CompareHashAndPassword also fails on malformed hashes.
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *bcryptHasher) checkStrength(password string) error {
	if h.policy == nil {
		return nil
	}

	var problems []string

	length := len([]rune(password))
	if h.policy.MinLength > 0 && length < h.policy.MinLength {
		problems = append(problems, fmt.Sprintf("at least %d characters", h.policy.MinLength))
	}
	if h.policy.MaxLength > 0 && length > h.policy.MaxLength {
		problems = append(problems, fmt.Sprintf("at most %d characters", h.policy.MaxLength))
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.policy.RequireUppercase && !hasUpper {
		problems = append(problems, "an uppercase letter")
	}
	if h.policy.RequireLowercase && !hasLower {
		problems = append(problems, "a lowercase letter")
	}
	if h.policy.RequireNumbers && !hasNumber {
		problems = append(problems, "a number")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		problems = append(problems, "a special character")
	}

	if len(problems) == 0 {
		return nil
	}

	return domainerrors.ErrPasswordStrength.WithDetails("password needs " + strings.Join(problems, ", "))
}
