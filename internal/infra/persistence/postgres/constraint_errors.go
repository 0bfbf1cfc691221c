package postgres

import (
	"strings"

	"jobtracker/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// Helper functions for constraint error checking. PostgreSQL errors are
// classified by SQLSTATE; SQLite only reports a message.
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	if code, ok := pgErrorCode(err); ok {
		return code == pgUniqueViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyConstraintViolation(err error) bool {
	// Check for GORM's foreign key violation error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	if code, ok := pgErrorCode(err); ok {
		return code == pgForeignKeyViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func isNotNullConstraintViolation(err error) bool {
	if code, ok := pgErrorCode(err); ok {
		return code == pgNotNullViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "not null constraint failed")
}

func isCheckConstraintViolation(err error) bool {
	// Check for GORM's check constraint violation error
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	if code, ok := pgErrorCode(err); ok {
		return code == pgCheckViolation
	}

	return strings.Contains(strings.ToLower(err.Error()), "check constraint failed")
}

// violationMentions reports whether the violated constraint refers to column.
// PostgreSQL exposes the constraint name (e.g. users_email_key); SQLite embeds
// the column in the message (e.g. "UNIQUE constraint failed: users.email").
func violationMentions(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.Contains(strings.ToLower(pgErr.ConstraintName), column) ||
			strings.Contains(strings.ToLower(pgErr.ColumnName), column)
	}

	return strings.Contains(strings.ToLower(err.Error()), "."+column)
}

func pgErrorCode(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}

	return "", false
}
