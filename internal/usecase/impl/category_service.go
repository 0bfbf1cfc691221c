package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jobtracker/internal/delivery/context"
	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/errors"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService creates a new category service instance.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) CreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{Name: name}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		if err := ensureCategoryNameFree(ctx, categoryRepo, name, uuid.Nil); err != nil {
			return err
		}

		return categoryRepo.Create(ctx, category)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	srv.log(ctx).Info("Category created", slog.Any("categoryID", category.ID), slog.String("name", name))

	return category, nil
}

func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateErr(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to find category")
	}

	return category, nil
}

func (srv *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	name, err := categoryName(name)
	if err != nil {
		return nil, err
	}

	var updated *entity.Category
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		category, err := categoryRepo.FindByID(ctx, id)
		if err != nil {
			return translateErr(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to find category")
		}

		if err := ensureCategoryNameFree(ctx, categoryRepo, name, id); err != nil {
			return err
		}

		category.Name = name
		if err := categoryRepo.Update(ctx, category); err != nil {
			return translateErr(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to update category")
		}

		updated = category

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update category")
	}

	return updated, nil
}

// DeleteCategory removes a category that no job references.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()

		if _, err := categoryRepo.FindByID(ctx, id); err != nil {
			return translateErr(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to find category")
		}

		inUse, err := repoFactory.NewJobRepository().CountByCategory(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count category references")
		}
		if inUse > 0 {
			return domainerrors.ErrCategoryInUse
		}

		if err := categoryRepo.Delete(ctx, id); err != nil {
			return translateErr(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to delete category")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}

	srv.log(ctx).Info("Category deleted", slog.Any("categoryID", id))

	return nil
}

func categoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerrors.ErrValidationFailed.WithDetails("name: must not be empty")
	}

	return name, nil
}

// ensureCategoryNameFree fails when another category already uses name.
func ensureCategoryNameFree(ctx context.Context, categoryRepo repository.CategoryRepository, name string, self uuid.UUID) error {
	existing, err := categoryRepo.FindByName(ctx, name)
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		return nil
	case err != nil:
		return errors.Wrap(err, "failed to check category name")
	case existing.ID != self:
		return domainerrors.ErrCategoryAlreadyExists
	default:
		return nil
	}
}
