package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/errors"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultSeedJobs = 20

	demoUsername = "testuser"
	demoEmail    = "test@example.com"
	demoPassword = "password123"
)

var (
	seedCategories = []string{
		"Software Development",
		"Data Science",
		"DevOps",
		"Product Management",
		"UX/UI Design",
		"Marketing",
		"Sales",
		"Customer Support",
	}

	seedTitles = []string{
		"Backend Engineer", "Frontend Developer", "Data Analyst", "Site Reliability Engineer",
		"Product Manager", "UX Designer", "Marketing Specialist", "Account Executive",
		"Support Engineer", "Machine Learning Engineer",
	}

	seedCompanies = []string{
		"Acme Corp", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries", "Wayne Enterprises", "Tyrell",
	}

	seedLocations = []string{"Remote", "Taipei", "Berlin", "London", "New York", "San Francisco", "Tokyo"}

	seedStatuses = []entity.JobStatus{
		entity.JobStatusApplied, entity.JobStatusInterview, entity.JobStatusOffer, entity.JobStatusRejected,
	}
)

// seeder fills an empty database with demo data. Every step is idempotent:
// existing categories and the existing demo user are reused, and jobs are only
// generated while the demo user has none.
type seeder struct {
	authUC     usecase.AuthUsecase
	categoryUC usecase.CategoryUsecase
	jobUC      usecase.JobUsecase
	userRepo   repository.UserRepository
	rng        *rand.Rand
	logger     *slog.Logger
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

func (s *seeder) run(ctx context.Context, jobs int) error {
	categories, err := s.seedCategories(ctx)
	if err != nil {
		return err
	}

	user, err := s.seedUser(ctx)
	if err != nil {
		return err
	}

	return s.seedJobs(ctx, user.ID, categories, jobs)
}

func (s *seeder) seedCategories(ctx context.Context) ([]*entity.Category, error) {
	for _, name := range seedCategories {
		_, err := s.categoryUC.CreateCategory(ctx, name)
		switch {
		case err == nil:
			s.logger.Info("Created category", slog.String("name", name))
		case errors.Is(err, domainerrors.ErrCategoryAlreadyExists):
			s.logger.Debug("Category already exists", slog.String("name", name))
		default:
			return nil, errors.Wrapf(err, "create category %q", name)
		}
	}

	categories, err := s.categoryUC.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list categories")
	}

	return categories, nil
}

func (s *seeder) seedUser(ctx context.Context) (*entity.User, error) {
	user, err := s.authUC.Register(ctx, &usecase.RegisterInput{
		Username:  demoUsername,
		Email:     demoEmail,
		Password:  demoPassword,
		FirstName: "Test",
		LastName:  "User",
	})
	if err == nil {
		s.logger.Info("Created demo user", slog.String("username", demoUsername))

		return user, nil
	}

	if !errors.Is(err, domainerrors.ErrEmailAlreadyRegistered) &&
		!errors.Is(err, domainerrors.ErrUsernameTaken) &&
		!errors.Is(err, domainerrors.ErrAlreadyRegistered) {
		return nil, errors.Wrap(err, "register demo user")
	}

	user, err = s.userRepo.FindByUsername(ctx, demoUsername)
	if err != nil {
		return nil, errors.Wrap(err, "find demo user")
	}

	s.logger.Debug("Demo user already exists", slog.String("username", demoUsername))

	return user, nil
}

func (s *seeder) seedJobs(ctx context.Context, ownerID uuid.UUID, categories []*entity.Category, count int) error {
	existing, err := s.jobUC.CountJobs(ctx, ownerID, repository.JobFilter{})
	if err != nil {
		return errors.Wrap(err, "count demo jobs")
	}
	if existing > 0 {
		s.logger.Info("Demo user already has jobs, skipping", slog.Int64("jobs", existing))

		return nil
	}

	for i := range count {
		if _, err := s.jobUC.CreateJob(ctx, ownerID, s.randomJob(categories)); err != nil {
			return errors.Wrapf(err, "create sample job %d", i+1)
		}
	}

	s.logger.Info("Created sample jobs", slog.Int("jobs", count))

	return nil
}

func (s *seeder) randomJob(categories []*entity.Category) *usecase.JobInput {
	title := pick(s.rng, seedTitles)
	company := pick(s.rng, seedCompanies)
	salary := float64(40+s.rng.IntN(160)) * 1000
	posted := time.Now().UTC().AddDate(0, 0, -s.rng.IntN(60)).Truncate(time.Second)

	input := &usecase.JobInput{
		Title:       title,
		Company:     company,
		Location:    pick(s.rng, seedLocations),
		Description: title + " at " + company,
		Salary:      &salary,
		Status:      pick(s.rng, seedStatuses),
		DatePosted:  &posted,
	}

	if len(categories) > 0 {
		categoryID := pick(s.rng, categories).ID
		input.CategoryID = &categoryID
	}

	return input
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
