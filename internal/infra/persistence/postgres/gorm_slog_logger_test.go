package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"jobtracker/config"
	deliverycontext "jobtracker/internal/delivery/context"
	"jobtracker/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(debug bool) (logger.Interface, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &config.Config{}
	cfg.Env.Debug = debug
	cfg.Database.SlowQueryThreshold = 50 * time.Millisecond

	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newGormSlogLogger(base, cfg), &buf
}

func sqlAndRows() (string, int64) {
	return `SELECT * FROM "jobs"`, 3
}

func TestGormSlogLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		elapsed time.Duration
		err     error
		want    string
	}{
		{name: "fast query is quiet by default", elapsed: time.Millisecond},
		{name: "fast query is logged in debug", debug: true, elapsed: time.Millisecond, want: "level=INFO msg=\"GORM query\""},
		{name: "slow query", elapsed: 100 * time.Millisecond, want: "level=WARN msg=\"GORM slow query\""},
		{name: "failed query", elapsed: time.Millisecond, err: errors.New("connection reset"), want: "level=ERROR msg=\"GORM query failed\""},
		{name: "missing row is quiet by default", elapsed: time.Millisecond, err: gorm.ErrRecordNotFound},
		{name: "duplicate key is debug", debug: true, elapsed: time.Millisecond, err: gorm.ErrDuplicatedKey, want: "level=DEBUG msg=\"GORM query rejected\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newBufferedGormLogger(tt.debug)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), sqlAndRows, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "rows=3")
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	l, _ := newBufferedGormLogger(false)

	var reqBuf bytes.Buffer
	reqLogger := slog.New(slog.NewTextHandler(&reqBuf, nil)).With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now(), sqlAndRows, errors.New("boom"))

	assert.Contains(t, reqBuf.String(), "request_id=req-1")
}

func TestGormSlogLogger_LogMode(t *testing.T) {
	l, buf := newBufferedGormLogger(true)

	silent := l.LogMode(logger.Silent)
	silent.Trace(context.Background(), time.Now(), sqlAndRows, errors.New("boom"))
	silent.Error(context.Background(), "ignored %d", 1)
	assert.Empty(t, buf.String())

	l.Warn(context.Background(), "pool size %d", 5)
	assert.Contains(t, buf.String(), "pool size 5")
}
