package handler

import (
	"net/http"
	"testing"

	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_Register(t *testing.T) {
	t.Run("created without credentials", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.user.PasswordHash = ""
		fx.user.FirstName = "Alice"
		fx.authUC.EXPECT().
			Register(mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
				return in.Username == "alice" && in.Email == "alice@example.com" &&
					in.Password == "password123" && in.FirstName == "Alice"
			})).
			Return(fx.user, nil)

		rec := fx.do(http.MethodPost, "/users",
			`{"username":"alice","email":"alice@example.com","password":"password123","first_name":"Alice"}`, "")

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotContains(t, rec.Body.String(), "password")

		var body UserResponse
		decodeData(t, rec, &body)
		assert.Equal(t, fx.user.ID, body.ID)
		assert.Equal(t, "Alice", body.FirstName)
		assert.True(t, body.IsActive)
	})

	t.Run("duplicate email", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrEmailAlreadyRegistered)

		rec := fx.do(http.MethodPost, "/users",
			`{"username":"alice","email":"alice@example.com","password":"password123"}`, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "EMAIL_ALREADY_REGISTERED", env.Error.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		fx := newAPIFixtures(t)

		rec := fx.do(http.MethodPost, "/users",
			`{"username":"alice","email":"not-an-email","password":"password123"}`, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, env.Error.Details, "email")
	})

	t.Run("malformed body", func(t *testing.T) {
		fx := newAPIFixtures(t)

		rec := fx.do(http.MethodPost, "/users", `{"username":`, "")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestUserHandler_Authentication(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		fx := newAPIFixtures(t)

		rec := fx.do(http.MethodGet, "/users/me", "", "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authUC.EXPECT().Resolve(mock.Anything, "expired").Return(nil, domainerrors.ErrUnauthorized)

		rec := fx.do(http.MethodGet, "/users/me", "", "expired")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUserHandler_GetProfile(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.authenticate()
	fx.profileUC.EXPECT().GetProfile(mock.Anything, fx.user.ID).Return(fx.user, nil)

	rec := fx.do(http.MethodGet, "/users/me", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var body UserResponse
	decodeData(t, rec, &body)
	assert.Equal(t, "alice", body.Username)
	assert.Equal(t, "alice@example.com", body.Email)
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	t.Run("partial patch", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		updated := *fx.user
		updated.Bio = "Backend engineer"
		fx.profileUC.EXPECT().
			UpdateProfile(mock.Anything, fx.user.ID, mock.MatchedBy(func(in *usecase.UpdateProfileInput) bool {
				return in.Bio != nil && *in.Bio == "Backend engineer" && in.Username == nil && in.Location == nil
			})).
			Return(&updated, nil)

		rec := fx.do(http.MethodPut, "/users/me", `{"bio":"Backend engineer"}`, testToken)

		require.Equal(t, http.StatusOK, rec.Code)
		var body UserResponse
		decodeData(t, rec, &body)
		assert.Equal(t, "Backend engineer", body.Bio)
	})

	t.Run("username taken", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()
		fx.profileUC.EXPECT().UpdateProfile(mock.Anything, fx.user.ID, mock.Anything).Return(nil, domainerrors.ErrUsernameTaken)

		rec := fx.do(http.MethodPut, "/users/me", `{"username":"bobby"}`, testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "USERNAME_TAKEN", env.Error.Code)
	})

	t.Run("username too short", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		rec := fx.do(http.MethodPut, "/users/me", `{"username":"ab"}`, testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_DeleteAccount(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.authenticate()
	fx.profileUC.EXPECT().DeleteAccount(mock.Anything, fx.user.ID).Return(nil)

	rec := fx.do(http.MethodDelete, "/users/me/", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeData(t, rec, &body)
	assert.Equal(t, "User account deleted successfully", body["message"])
}
