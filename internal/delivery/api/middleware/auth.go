// Package middleware contains API-specific echo middleware.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "jobtracker/internal/delivery/context"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/entity"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	contextKeyUserID = "userID"
	contextKeyUser   = "user"
	bearerScheme     = "bearer"
)

// AuthMiddleware resolves the bearer token of a request to the current user.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authUC usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{authUC: authUC}
}

// Authenticate rejects requests without a valid bearer token. On success the
// user and its ID are stored on the echo context, and the ID is added to the
// request context and its logger.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthorized
		}

		user, err := m.authUC.Resolve(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(contextKeyUserID, user.ID)
		c.Set(contextKeyUser, user)

		ctx := deliverycontext.WithUserID(c.Request().Context(), user.ID)
		if reqLogger := deliverycontext.GetLogger(ctx); reqLogger != nil {
			ctx = deliverycontext.WithLogger(ctx, reqLogger.With(slog.String("user_id", user.ID.String())))
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// GetUserID extracts the user ID from the echo context
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(contextKeyUserID).(uuid.UUID)

	return userID, ok
}

// GetCurrentUser extracts the authenticated user from the echo context
func GetCurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok && user != nil
}
