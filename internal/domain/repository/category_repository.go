package repository

import (
	"context"

	"jobtracker/internal/domain/entity"
	"jobtracker/internal/errors"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository persists the shared category taxonomy.
type CategoryRepository interface {
	CRUDRepository[entity.Category]

	// FindByName retrieves a category by its exact name.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// List returns every category ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)
}
