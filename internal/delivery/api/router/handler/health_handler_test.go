package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"jobtracker/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_HealthCheck(t *testing.T) {
	tests := []struct {
		name     string
		pingErr  error
		wantCode int
	}{
		{name: "healthy", wantCode: http.StatusOK},
		{name: "database down", pingErr: errors.New("connection refused"), wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{
				db:     pingerFunc(func(context.Context) error { return tt.pingErr }),
				logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			}

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			require.NoError(t, h.HealthCheck(c))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.pingErr != nil {
				assert.NotContains(t, rec.Body.String(), "connection refused")
			}
		})
	}
}
