package repository

import (
	"context"

	"jobtracker/internal/domain/entity"
	"jobtracker/internal/errors"

	"github.com/google/uuid"
)

// ErrJobNotFound is returned when a job is not found.
var ErrJobNotFound = errors.New("job not found")

// JobRepository persists job applications. Lookups by ID are not scoped;
// ownership is enforced by the caller so it can tell "missing" from "not yours".
type JobRepository interface {
	CRUDRepository[entity.Job]

	// Search returns one page of the owner's jobs matching the query, plus the
	// total number of matches before pagination.
	Search(ctx context.Context, ownerID uuid.UUID, query JobQuery) ([]*entity.Job, int64, error)

	// Count returns how many of the owner's jobs match the filter.
	Count(ctx context.Context, ownerID uuid.UUID, filter JobFilter) (int64, error)

	// CountByCategory returns how many jobs, across all owners, reference the category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
