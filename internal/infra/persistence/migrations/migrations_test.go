package migrations

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"jobtracker/config"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return sqlDB
}

func TestMigrations_UpDownStatus(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	statuses, err := Status(ctx, db, config.DriverSQLite, "")
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, status := range statuses {
		assert.Equal(t, goose.StatePending, status.State)
	}

	require.NoError(t, Up(ctx, db, config.DriverSQLite, "", logger))

	statuses, err = Status(ctx, db, config.DriverSQLite, "")
	require.NoError(t, err)
	for _, status := range statuses {
		assert.Equal(t, goose.StateApplied, status.State, status.Source.Path)
	}

	var tables int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'categories', 'jobs')`,
	).Scan(&tables))
	assert.Equal(t, 3, tables)

	require.NoError(t, Down(ctx, db, config.DriverSQLite, "", logger))

	statuses, err = Status(ctx, db, config.DriverSQLite, "")
	require.NoError(t, err)
	assert.Equal(t, goose.StatePending, statuses[2].State)
	assert.Equal(t, int64(3), statuses[2].Source.Version)
}

func TestNewProvider_MissingDir(t *testing.T) {
	_, err := NewProvider(openSQLite(t), config.DriverSQLite, t.TempDir())
	assert.Error(t, err)
}
