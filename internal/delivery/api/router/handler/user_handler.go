package handler

import (
	"log/slog"
	"net/http"

	"jobtracker/internal/delivery/api/middleware"
	"jobtracker/internal/delivery/api/response"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AuthUC    usecase.AuthUsecase
	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// UserHandler holds dependencies for account and profile handlers
type UserHandler struct {
	authUC    usecase.AuthUsecase
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		authUC:    params.AuthUC,
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// Register handles account creation.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req, "Invalid registration input"); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.authUC.Register(c.Request().Context(), req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newUserResponse(user))
}

// GetProfile returns the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UpdateProfile applies a partial update to the current user's profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req, "Invalid profile input"); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// DeleteAccount deletes the current user together with their jobs.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	if err := h.profileUC.DeleteAccount(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "User account deleted successfully")
}
