package auth

import (
	"strings"
	"testing"

	"jobtracker/config"
	domainerrors "jobtracker/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	for _, password := range []string{"password123", "StrongPass123!", "пароль-с-юникодом", " "} {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.True(t, hasher.Check(password, hash), password)
		assert.False(t, hasher.Check(password+"x", hash), password)
	}
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("password123")
	require.NoError(t, err)
	second, err := hasher.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	assert.False(t, hasher.Check("password123", ""))
	assert.False(t, hasher.Check("password123", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Check("password123", "$2a$04$short"))
}

func TestBcryptHasher_Cost(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 5}}
	hash, err := NewBcryptHasher(cfg).Hash("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	// Out-of-range costs fall back to the library default.
	hash, err = NewBcryptHasherWithCost(99).Hash("password123")
	require.NoError(t, err)
	cost, err = bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_TooLong(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("a", 73))
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "PASSWORD_STRENGTH", appErr.ErrorCode())
}

func TestBcryptHasher_StrengthPolicy(t *testing.T) {
	hasher := newBcryptHasher(bcrypt.MinCost, &config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        64,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	})

	weakPasswords := []string{
		"Ab1!",         // Too short
		"PASSWORD123!", // No lowercase
		"password123!", // No uppercase
		"PasswordABC!", // No numbers
		"Password123",  // No special characters
	}

	for _, weak := range weakPasswords {
		_, err := hasher.Hash(weak)
		require.Error(t, err, weak)

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr), weak)
		assert.Equal(t, "PASSWORD_STRENGTH", appErr.ErrorCode())
		assert.NotEmpty(t, appErr.Details())
	}

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)
	assert.True(t, hasher.Check("StrongPass123!", hash))
}
