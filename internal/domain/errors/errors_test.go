package errors

import (
	"net/http"
	"testing"

	"jobtracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsAppError(t *testing.T) {
	wrapped := ErrJobNotFound.WrapMessage("job lookup")

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "JOB_NOT_FOUND", appErr.ErrorCode())
	assert.True(t, errors.Is(wrapped, ErrJobNotFound))
}

func TestBaseError_WithDetailsReturnsCopy(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("limit must be <= 100")

	assert.Equal(t, "limit must be <= 100", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())
	assert.Equal(t, ErrValidationFailed.ErrorCode(), detailed.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to create job")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "failed to create job", err.Details())
	assert.Contains(t, err.Error(), "connection reset")
	assert.True(t, errors.Is(err, cause))
}

func TestConflictErrorsUseBadRequest(t *testing.T) {
	for _, err := range []*BaseError{
		ErrEmailAlreadyRegistered,
		ErrUsernameTaken,
		ErrAlreadyRegistered,
		ErrCategoryAlreadyExists,
		ErrCategoryInUse,
	} {
		assert.Equal(t, http.StatusBadRequest, err.HTTPCode(), err.ErrorCode())
	}
}
