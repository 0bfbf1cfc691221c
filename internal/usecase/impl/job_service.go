package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"jobtracker/config"
	deliverycontext "jobtracker/internal/delivery/context"
	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/errors"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	minJobTextLength = 2
	maxJobTextLength = 100
)

// jobService implements the JobUsecase interface. Every operation is scoped to
// the calling owner: reads of another user's job fail with ErrJobForbidden.
type jobService struct {
	txManager    repository.TransactionManager
	jobRepo      repository.JobRepository
	defaultLimit int
	maxLimit     int
	now          func() time.Time
	logger       *slog.Logger
}

// JobServiceParams holds dependencies for JobService, injected by Fx.
type JobServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	JobRepo   repository.JobRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewJobService creates a new job service instance.
func NewJobService(params JobServiceParams) usecase.JobUsecase {
	srv := &jobService{
		txManager:    params.TxManager,
		jobRepo:      params.JobRepo,
		defaultLimit: config.DefaultPageLimit,
		maxLimit:     config.DefaultMaxPageLimit,
		now:          time.Now,
		logger:       params.Logger,
	}

	if params.Config != nil && params.Config.Pagination != nil {
		if params.Config.Pagination.DefaultLimit > 0 {
			srv.defaultLimit = params.Config.Pagination.DefaultLimit
		}
		if params.Config.Pagination.MaxLimit > 0 {
			srv.maxLimit = params.Config.Pagination.MaxLimit
		}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *jobService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateJob records a new job owned by ownerID. A referenced category must exist.
func (srv *jobService) CreateJob(ctx context.Context, ownerID uuid.UUID, input *usecase.JobInput) (*entity.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	job := &entity.Job{OwnerID: ownerID, DatePosted: srv.now().UTC()}
	applyJobInput(job, input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		category, err := findJobCategory(ctx, repoFactory.NewCategoryRepository(), input.CategoryID)
		if err != nil {
			return err
		}

		if err := repoFactory.NewJobRepository().Create(ctx, job); err != nil {
			return err
		}
		job.Category = category

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create job", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute job creation transaction")
	}

	srv.log(ctx).Debug("Job created", slog.Any("jobID", job.ID), slog.Any("ownerID", ownerID))

	return job, nil
}

// GetJob returns the job if ownerID owns it.
func (srv *jobService) GetJob(ctx context.Context, ownerID, jobID uuid.UUID) (*entity.Job, error) {
	return findOwnedJob(ctx, srv.jobRepo, ownerID, jobID)
}

// ListJobs returns one page of the owner's jobs and the total number of matches.
func (srv *jobService) ListJobs(ctx context.Context, ownerID uuid.UUID, input *usecase.JobListInput) (*usecase.JobListOutput, error) {
	query, err := srv.buildQuery(input)
	if err != nil {
		return nil, err
	}

	jobs, total, err := srv.jobRepo.Search(ctx, ownerID, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}

	return &usecase.JobListOutput{Total: total, Jobs: jobs}, nil
}

// SearchJobs is ListJobs without the total.
func (srv *jobService) SearchJobs(ctx context.Context, ownerID uuid.UUID, input *usecase.JobListInput) ([]*entity.Job, error) {
	out, err := srv.ListJobs(ctx, ownerID, input)
	if err != nil {
		return nil, err
	}

	return out.Jobs, nil
}

// CountJobs returns how many of the owner's jobs match the filter.
func (srv *jobService) CountJobs(ctx context.Context, ownerID uuid.UUID, filter repository.JobFilter) (int64, error) {
	total, err := srv.jobRepo.Count(ctx, ownerID, filter)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count jobs")
	}

	return total, nil
}

// UpdateJob replaces every mutable field of an owned job.
func (srv *jobService) UpdateJob(ctx context.Context, ownerID, jobID uuid.UUID, input *usecase.JobInput) (*entity.Job, error) {
	if err := validateJobInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Job
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		jobRepo := repoFactory.NewJobRepository()

		job, err := findOwnedJob(ctx, jobRepo, ownerID, jobID)
		if err != nil {
			return err
		}

		category, err := findJobCategory(ctx, repoFactory.NewCategoryRepository(), input.CategoryID)
		if err != nil {
			return err
		}

		applyJobInput(job, input)
		if err := jobRepo.Update(ctx, job); err != nil {
			return translateErr(err, repository.ErrJobNotFound, domainerrors.ErrJobNotFound, "failed to update job")
		}
		job.Category = category

		updated = job

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update job", slog.Any("jobID", jobID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute job update transaction")
	}

	return updated, nil
}

// DeleteJob removes an owned job.
func (srv *jobService) DeleteJob(ctx context.Context, ownerID, jobID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		jobRepo := repoFactory.NewJobRepository()

		if _, err := findOwnedJob(ctx, jobRepo, ownerID, jobID); err != nil {
			return err
		}

		if err := jobRepo.Delete(ctx, jobID); err != nil {
			return translateErr(err, repository.ErrJobNotFound, domainerrors.ErrJobNotFound, "failed to delete job")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute job deletion transaction")
	}

	srv.log(ctx).Debug("Job deleted", slog.Any("jobID", jobID), slog.Any("ownerID", ownerID))

	return nil
}

// buildQuery validates sorting and skip, and fits the limit into [1, maxLimit].
func (srv *jobService) buildQuery(input *usecase.JobListInput) (repository.JobQuery, error) {
	if input == nil {
		input = &usecase.JobListInput{}
	}

	sortBy := repository.SortField(strings.ToLower(string(input.SortBy)))
	if sortBy == "" {
		sortBy = repository.SortByID
	}
	if !sortBy.IsValid() {
		return repository.JobQuery{}, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("sort_by: unsupported value %q", input.SortBy))
	}

	order := repository.SortOrder(strings.ToLower(string(input.SortOrder)))
	if order == "" {
		order = repository.SortAsc
	}
	if !order.IsValid() {
		return repository.JobQuery{}, domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("sort_order: unsupported value %q", input.SortOrder))
	}

	if input.Skip < 0 {
		return repository.JobQuery{}, domainerrors.ErrValidationFailed.WithDetails("skip: must not be negative")
	}

	limit := input.Limit
	switch {
	case limit < 0:
		return repository.JobQuery{}, domainerrors.ErrValidationFailed.WithDetails("limit: must not be negative")
	case limit == 0:
		limit = srv.defaultLimit
	case limit > srv.maxLimit:
		limit = srv.maxLimit
	}

	return repository.JobQuery{
		Filter: input.Filter(),
		Sort:   repository.JobSort{Field: sortBy, Order: order},
		Page:   repository.Pagination{Skip: input.Skip, Limit: limit},
	}, nil
}

// findOwnedJob distinguishes a missing job (404) from someone else's job (403).
func findOwnedJob(ctx context.Context, jobRepo repository.JobRepository, ownerID, jobID uuid.UUID) (*entity.Job, error) {
	job, err := jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return nil, translateErr(err, repository.ErrJobNotFound, domainerrors.ErrJobNotFound, "failed to find job")
	}

	if !job.IsOwnedBy(ownerID) {
		return nil, domainerrors.ErrJobForbidden
	}

	return job, nil
}

func findJobCategory(ctx context.Context, categoryRepo repository.CategoryRepository, categoryID *uuid.UUID) (*entity.Category, error) {
	if categoryID == nil {
		return nil, nil
	}

	category, err := categoryRepo.FindByID(ctx, *categoryID)
	if err != nil {
		return nil, translateErr(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "failed to find category")
	}

	return category, nil
}

func validateJobInput(input *usecase.JobInput) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WithDetails("job payload is required")
	}

	fields := []struct{ name, value string }{
		{"title", input.Title},
		{"company", input.Company},
	}
	for _, field := range fields {
		n := utf8.RuneCountInString(strings.TrimSpace(field.value))
		if n < minJobTextLength || n > maxJobTextLength {
			return domainerrors.ErrValidationFailed.WithDetails(
				fmt.Sprintf("%s: must be between %d and %d characters", field.name, minJobTextLength, maxJobTextLength))
		}
	}

	return nil
}

// applyJobInput copies the mutable fields onto job. DatePosted is only
// overwritten when supplied.
func applyJobInput(job *entity.Job, input *usecase.JobInput) {
	job.CategoryID = input.CategoryID
	job.Title = strings.TrimSpace(input.Title)
	job.Company = strings.TrimSpace(input.Company)
	job.Location = strings.TrimSpace(input.Location)
	job.Description = input.Description
	job.Salary = input.Salary
	job.URL = strings.TrimSpace(input.URL)
	job.Notes = input.Notes

	job.Status = input.Status
	if job.Status == "" {
		job.Status = entity.DefaultJobStatus
	}

	if input.DatePosted != nil {
		job.DatePosted = input.DatePosted.UTC()
	}
}
