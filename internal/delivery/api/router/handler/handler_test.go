package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobtracker/internal/delivery/api/middleware"
	"jobtracker/internal/delivery/api/validator"
	deliverymiddleware "jobtracker/internal/delivery/middleware"
	"jobtracker/internal/domain/entity"
	mockUsecase "jobtracker/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testToken = "valid-token"

// envelope mirrors the JSON shape written by the response package.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Detail string `json:"detail"`
	Meta   struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

// apiFixtures wires the handlers to mocked usecases behind the same middleware as the server.
type apiFixtures struct {
	e          *echo.Echo
	authUC     *mockUsecase.MockAuthUsecase
	profileUC  *mockUsecase.MockProfileUsecase
	jobUC      *mockUsecase.MockJobUsecase
	categoryUC *mockUsecase.MockCategoryUsecase
	user       *entity.User
}

func newAPIFixtures(t *testing.T) apiFixtures {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fx := apiFixtures{
		e:          echo.New(),
		authUC:     mockUsecase.NewMockAuthUsecase(t),
		profileUC:  mockUsecase.NewMockProfileUsecase(t),
		jobUC:      mockUsecase.NewMockJobUsecase(t),
		categoryUC: mockUsecase.NewMockCategoryUsecase(t),
		user: &entity.User{
			ID:       uuid.Must(uuid.NewV7()),
			Username: "alice",
			Email:    "alice@example.com",
			IsActive: true,
		},
	}

	fx.e.Pre(echomiddleware.RemoveTrailingSlash())
	fx.e.Use(deliverymiddleware.NewRequestIDMiddleware(logger).Process)
	fx.e.Validator = validator.New()
	fx.e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	authMiddleware := middleware.NewAuthMiddleware(fx.authUC)
	authHandler := NewAuthHandler(AuthHandlerParams{AuthUC: fx.authUC, Logger: logger})
	userHandler := NewUserHandler(UserHandlerParams{AuthUC: fx.authUC, ProfileUC: fx.profileUC, Logger: logger})
	jobHandler := NewJobHandler(JobHandlerParams{JobUC: fx.jobUC, Logger: logger})
	categoryHandler := NewCategoryHandler(CategoryHandlerParams{CategoryUC: fx.categoryUC, Logger: logger})

	fx.e.POST("/token", authHandler.Token)
	fx.e.POST("/users", userHandler.Register)
	me := fx.e.Group("/users/me", authMiddleware.Authenticate)
	me.GET("", userHandler.GetProfile)
	me.PUT("", userHandler.UpdateProfile)
	me.DELETE("", userHandler.DeleteAccount)

	jobs := fx.e.Group("/jobs", authMiddleware.Authenticate)
	jobs.POST("", jobHandler.CreateJob)
	jobs.GET("", jobHandler.ListJobs)
	jobs.GET("/search", jobHandler.SearchJobs)
	jobs.GET("/count", jobHandler.CountJobs)
	jobs.GET("/:id", jobHandler.GetJob)
	jobs.PUT("/:id", jobHandler.UpdateJob)
	jobs.DELETE("/:id", jobHandler.DeleteJob)

	categories := fx.e.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	return fx
}

// authenticate makes testToken resolve to the fixture user.
func (fx apiFixtures) authenticate() {
	fx.authUC.EXPECT().Resolve(mock.Anything, testToken).Return(fx.user, nil)
}

func (fx apiFixtures) do(method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	fx.e.ServeHTTP(rec, req)

	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())

	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}

func testTime() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}
