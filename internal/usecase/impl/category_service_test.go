package impl

import (
	"context"
	"testing"

	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	mockRepo "jobtracker/internal/mocks/repository"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type categoryServiceFixtures struct {
	service        usecase.CategoryUsecase
	txManager      *mockRepo.MockTransactionManager
	factory        *mockRepo.MockRepositoryFactory
	categoryRepo   *mockRepo.MockCategoryRepository
	txCategoryRepo *mockRepo.MockCategoryRepository
	txJobRepo      *mockRepo.MockJobRepository
}

func createTestCategoryService(t *testing.T) categoryServiceFixtures {
	fx := categoryServiceFixtures{
		txManager:      mockRepo.NewMockTransactionManager(t),
		factory:        mockRepo.NewMockRepositoryFactory(t),
		categoryRepo:   mockRepo.NewMockCategoryRepository(t),
		txCategoryRepo: mockRepo.NewMockCategoryRepository(t),
		txJobRepo:      mockRepo.NewMockJobRepository(t),
	}

	fx.service = NewCategoryService(CategoryServiceParams{
		TxManager:    fx.txManager,
		CategoryRepo: fx.categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return fx
}

func (fx categoryServiceFixtures) expectTx() {
	fx.factory.EXPECT().NewCategoryRepository().Return(fx.txCategoryRepo)
	fx.factory.EXPECT().NewJobRepository().Return(fx.txJobRepo).Maybe()
	expectTx(fx.txManager, fx.factory)
}

func TestCategoryService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("created", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByName(ctx, "DevOps").Return(nil, repository.ErrCategoryNotFound)
		fx.txCategoryRepo.EXPECT().
			Create(ctx, mock.AnythingOfType("*entity.Category")).
			Run(func(_ context.Context, category *entity.Category) {
				category.ID = uuid.New()
			}).
			Return(nil)

		category, err := fx.service.CreateCategory(ctx, "  DevOps ")

		require.NoError(t, err)
		assert.Equal(t, "DevOps", category.Name)
		assert.NotEqual(t, uuid.Nil, category.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByName(ctx, "DevOps").Return(&entity.Category{ID: uuid.New(), Name: "DevOps"}, nil)

		_, err := fx.service.CreateCategory(ctx, "DevOps")

		assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyExists)
	})

	t.Run("blank name", func(t *testing.T) {
		fx := createTestCategoryService(t)

		_, err := fx.service.CreateCategory(ctx, "   ")

		require.Error(t, err)
		fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_ListAndGet(t *testing.T) {
	ctx := context.Background()
	fx := createTestCategoryService(t)
	categories := []*entity.Category{{ID: uuid.New(), Name: "Data Science"}, {ID: uuid.New(), Name: "DevOps"}}
	missing := uuid.New()

	fx.categoryRepo.EXPECT().List(ctx).Return(categories, nil)
	fx.categoryRepo.EXPECT().FindByID(ctx, categories[0].ID).Return(categories[0], nil)
	fx.categoryRepo.EXPECT().FindByID(ctx, missing).Return(nil, repository.ErrCategoryNotFound)

	listed, err := fx.service.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, categories, listed)

	got, err := fx.service.GetCategory(ctx, categories[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Data Science", got.Name)

	_, err = fx.service.GetCategory(ctx, missing)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("renamed", func(t *testing.T) {
		fx := createTestCategoryService(t)
		category := &entity.Category{ID: uuid.New(), Name: "Dev Ops"}
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
		fx.txCategoryRepo.EXPECT().FindByName(ctx, "DevOps").Return(nil, repository.ErrCategoryNotFound)
		fx.txCategoryRepo.EXPECT().Update(ctx, category).Return(nil)

		updated, err := fx.service.UpdateCategory(ctx, category.ID, "DevOps")

		require.NoError(t, err)
		assert.Equal(t, "DevOps", updated.Name)
	})

	t.Run("keeping its own name is allowed", func(t *testing.T) {
		fx := createTestCategoryService(t)
		category := &entity.Category{ID: uuid.New(), Name: "DevOps"}
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
		fx.txCategoryRepo.EXPECT().FindByName(ctx, "DevOps").Return(category, nil)
		fx.txCategoryRepo.EXPECT().Update(ctx, category).Return(nil)

		_, err := fx.service.UpdateCategory(ctx, category.ID, "DevOps")

		require.NoError(t, err)
	})

	t.Run("name used by another category", func(t *testing.T) {
		fx := createTestCategoryService(t)
		category := &entity.Category{ID: uuid.New(), Name: "Dev Ops"}
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, category.ID).Return(category, nil)
		fx.txCategoryRepo.EXPECT().FindByName(ctx, "DevOps").Return(&entity.Category{ID: uuid.New(), Name: "DevOps"}, nil)

		_, err := fx.service.UpdateCategory(ctx, category.ID, "DevOps")

		assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyExists)
	})

	t.Run("missing", func(t *testing.T) {
		fx := createTestCategoryService(t)
		id := uuid.New()
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrCategoryNotFound)

		_, err := fx.service.UpdateCategory(ctx, id, "DevOps")

		assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
	})
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("unreferenced", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, id).Return(&entity.Category{ID: id}, nil)
		fx.txJobRepo.EXPECT().CountByCategory(ctx, id).Return(0, nil)
		fx.txCategoryRepo.EXPECT().Delete(ctx, id).Return(nil)

		assert.NoError(t, fx.service.DeleteCategory(ctx, id))
	})

	t.Run("still referenced", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, id).Return(&entity.Category{ID: id}, nil)
		fx.txJobRepo.EXPECT().CountByCategory(ctx, id).Return(2, nil)

		err := fx.service.DeleteCategory(ctx, id)

		assert.ErrorIs(t, err, domainerrors.ErrCategoryInUse)
		fx.txCategoryRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("reference added concurrently", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, id).Return(&entity.Category{ID: id}, nil)
		fx.txJobRepo.EXPECT().CountByCategory(ctx, id).Return(0, nil)
		fx.txCategoryRepo.EXPECT().Delete(ctx, id).Return(domainerrors.ErrCategoryInUse)

		assert.ErrorIs(t, fx.service.DeleteCategory(ctx, id), domainerrors.ErrCategoryInUse)
	})

	t.Run("missing", func(t *testing.T) {
		fx := createTestCategoryService(t)
		fx.expectTx()
		fx.txCategoryRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrCategoryNotFound)

		assert.ErrorIs(t, fx.service.DeleteCategory(ctx, id), domainerrors.ErrCategoryNotFound)
	})
}
