package usecase

import (
	"context"

	"jobtracker/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryUsecase manages the shared category taxonomy. Categories are not owned.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, name string) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
