package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobtracker/config"
	deliverycontext "jobtracker/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(debug bool) *config.Config {
	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return cfg
}

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name     string
		supplied string
		keep     bool
	}{
		{name: "keeps client id", supplied: "client-123", keep: true},
		{name: "replaces missing id", supplied: ""},
		{name: "replaces id with spaces", supplied: "bad id"},
		{name: "replaces oversized id", supplied: strings.Repeat("a", 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

			var seen, seenCtx string
			var hasLogger bool
			e.GET("/", func(c echo.Context) error {
				seen = deliverycontext.GetRequestID(c)
				seenCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				hasLogger = deliverycontext.GetLogger(c.Request().Context()) != nil

				return c.NoContent(http.StatusNoContent)
			}, mw.Process)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.supplied != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.supplied)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, seenCtx)
			assert.True(t, hasLogger)
			assert.Equal(t, seen, rec.Header().Get(deliverycontext.HeaderXRequestID))
			if tt.keep {
				assert.Equal(t, tt.supplied, seen)
			} else {
				assert.NotEqual(t, tt.supplied, seen)
			}
		})
	}
}

func TestLoggerMiddleware_Handle(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		path    string
		handler echo.HandlerFunc
		wantLog bool
		want    []string
	}{
		{
			name: "success is quiet outside debug",
			path: "/jobs",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
		},
		{
			name:  "success is logged in debug",
			debug: true,
			path:  "/jobs",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
			wantLog: true,
			want:    []string{"level=INFO", "status=200", "route=/jobs"},
		},
		{
			name: "server error is always logged with the rendered status",
			path: "/jobs",
			handler: func(echo.Context) error {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "down")
			},
			wantLog: true,
			want:    []string{"level=ERROR", "status=503"},
		},
		{
			name:  "health checks are skipped",
			debug: true,
			path:  "/health",
			handler: func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			e := echo.New()
			e.Use(NewRequestIDMiddleware(logger).Process)
			e.Use(NewLoggerMiddleware(logger, newTestConfig(tt.debug)).Handle)
			e.GET(tt.path, tt.handler)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if !tt.wantLog {
				assert.Empty(t, buf.String())

				return
			}

			out := buf.String()
			assert.Contains(t, out, "request_id=")
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}
