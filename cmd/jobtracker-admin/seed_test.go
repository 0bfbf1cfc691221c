package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	mockRepo "jobtracker/internal/mocks/repository"
	mockUsecase "jobtracker/internal/mocks/usecase"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type seederFixtures struct {
	seeder     *seeder
	authUC     *mockUsecase.MockAuthUsecase
	categoryUC *mockUsecase.MockCategoryUsecase
	jobUC      *mockUsecase.MockJobUsecase
	userRepo   *mockRepo.MockUserRepository
}

func newSeederFixtures(t *testing.T) seederFixtures {
	fx := seederFixtures{
		authUC:     mockUsecase.NewMockAuthUsecase(t),
		categoryUC: mockUsecase.NewMockCategoryUsecase(t),
		jobUC:      mockUsecase.NewMockJobUsecase(t),
		userRepo:   mockRepo.NewMockUserRepository(t),
	}
	fx.seeder = &seeder{
		authUC:     fx.authUC,
		categoryUC: fx.categoryUC,
		jobUC:      fx.jobUC,
		userRepo:   fx.userRepo,
		rng:        newRand(42),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return fx
}

func seededCategories() []*entity.Category {
	categories := make([]*entity.Category, 0, len(seedCategories))
	for _, name := range seedCategories {
		categories = append(categories, &entity.Category{ID: uuid.Must(uuid.NewV7()), Name: name})
	}

	return categories
}

func TestSeeder_Run_EmptyDatabase(t *testing.T) {
	fx := newSeederFixtures(t)
	ctx := context.Background()
	categories := seededCategories()
	user := &entity.User{ID: uuid.Must(uuid.NewV7()), Username: demoUsername}

	for _, category := range categories {
		fx.categoryUC.EXPECT().CreateCategory(ctx, category.Name).Return(category, nil).Once()
	}
	fx.categoryUC.EXPECT().ListCategories(ctx).Return(categories, nil)
	fx.authUC.EXPECT().
		Register(ctx, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
			return in.Username == demoUsername && in.Email == demoEmail && in.Password == demoPassword
		})).
		Return(user, nil)
	fx.jobUC.EXPECT().CountJobs(ctx, user.ID, repository.JobFilter{}).Return(0, nil)

	categoryIDs := make(map[uuid.UUID]bool, len(categories))
	for _, category := range categories {
		categoryIDs[category.ID] = true
	}
	fx.jobUC.EXPECT().
		CreateJob(ctx, user.ID, mock.MatchedBy(func(in *usecase.JobInput) bool {
			return len(in.Title) >= 2 && len(in.Company) >= 2 &&
				in.CategoryID != nil && categoryIDs[*in.CategoryID] &&
				in.Salary != nil && *in.Salary >= 40000 &&
				in.DatePosted != nil
		})).
		Return(&entity.Job{}, nil).
		Times(defaultSeedJobs)

	require.NoError(t, fx.seeder.run(ctx, defaultSeedJobs))
}

func TestSeeder_Run_AlreadySeeded(t *testing.T) {
	fx := newSeederFixtures(t)
	ctx := context.Background()
	categories := seededCategories()
	user := &entity.User{ID: uuid.Must(uuid.NewV7()), Username: demoUsername}

	fx.categoryUC.EXPECT().CreateCategory(ctx, mock.Anything).Return(nil, domainerrors.ErrCategoryAlreadyExists).Times(len(seedCategories))
	fx.categoryUC.EXPECT().ListCategories(ctx).Return(categories, nil)
	fx.authUC.EXPECT().Register(ctx, mock.Anything).Return(nil, domainerrors.ErrUsernameTaken)
	fx.userRepo.EXPECT().FindByUsername(ctx, demoUsername).Return(user, nil)
	fx.jobUC.EXPECT().CountJobs(ctx, user.ID, repository.JobFilter{}).Return(20, nil)

	require.NoError(t, fx.seeder.run(ctx, defaultSeedJobs))
}

func TestSeeder_Run_CategoryFailure(t *testing.T) {
	fx := newSeederFixtures(t)
	ctx := context.Background()

	fx.categoryUC.EXPECT().CreateCategory(ctx, seedCategories[0]).Return(nil, domainerrors.ErrInternalError)

	err := fx.seeder.run(ctx, defaultSeedJobs)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
}

func TestSeeder_RandomJobIsDeterministic(t *testing.T) {
	categories := seededCategories()

	first := (&seeder{rng: newRand(7)}).randomJob(categories)
	second := (&seeder{rng: newRand(7)}).randomJob(categories)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Company, second.Company)
	assert.Equal(t, *first.CategoryID, *second.CategoryID)
	assert.Equal(t, *first.Salary, *second.Salary)
}
