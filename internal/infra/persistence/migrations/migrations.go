// Package migrations applies the versioned schema with goose. SQL files for each
// dialect are embedded so the binary needs nothing on disk.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"log/slog"
	"os"

	"jobtracker/config"
	"jobtracker/internal/errors"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// NewProvider returns a goose provider for the configured driver. When dir is
// non-empty, migrations are read from that directory instead of the embedded set.
func NewProvider(db *sql.DB, driver, dir string) (*goose.Provider, error) {
	dialect := goose.DialectPostgres
	subdir := config.DriverPostgres
	if driver == config.DriverSQLite {
		dialect = goose.DialectSQLite3
		subdir = config.DriverSQLite
	}

	var fsys fs.FS
	if dir != "" {
		fsys = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(embedded, subdir)
		if err != nil {
			return nil, errors.Wrap(err, "open embedded migrations")
		}
		fsys = sub
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return nil, errors.Wrap(err, "create goose provider")
	}

	return provider, nil
}

// Up applies every pending migration and logs each one.
func Up(ctx context.Context, db *sql.DB, driver, dir string, logger *slog.Logger) error {
	provider, err := NewProvider(db, driver, dir)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	for _, result := range results {
		logger.LogAttrs(ctx, slog.LevelInfo, "Applied migration",
			slog.String("source", result.Source.Path),
			slog.Int64("version", result.Source.Version),
			slog.Duration("duration", result.Duration),
		)
	}

	return nil
}

// Down rolls back the most recently applied migration.
func Down(ctx context.Context, db *sql.DB, driver, dir string, logger *slog.Logger) error {
	provider, err := NewProvider(db, driver, dir)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return errors.Wrap(err, "roll back migration")
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Rolled back migration",
		slog.String("source", result.Source.Path),
		slog.Int64("version", result.Source.Version),
		slog.Duration("duration", result.Duration),
	)

	return nil
}

// Status reports every known migration and whether it is applied.
func Status(ctx context.Context, db *sql.DB, driver, dir string) ([]*goose.MigrationStatus, error) {
	provider, err := NewProvider(db, driver, dir)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "read migration status")
	}

	return statuses, nil
}
