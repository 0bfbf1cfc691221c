package usecase

import (
	"context"
	"time"

	"jobtracker/internal/domain/entity"
	"jobtracker/internal/domain/repository"

	"github.com/google/uuid"
)

// JobInput carries every mutable job field. It is used for both create and
// full-replace update; an empty Status falls back to the default and a nil
// DatePosted keeps the stored value (or the creation time on create).
type JobInput struct {
	CategoryID  *uuid.UUID
	Title       string
	Company     string
	Location    string
	Description string
	Salary      *float64
	URL         string
	Notes       string
	Status      entity.JobStatus
	DatePosted  *time.Time
}

// JobListInput holds the filter, sort and pagination parameters of a job listing.
// A zero Limit selects the configured default; limits above the maximum are clamped.
type JobListInput struct {
	Title     string
	Company   string
	Search    string
	SortBy    repository.SortField
	SortOrder repository.SortOrder
	Skip      int
	Limit     int
}

// Filter returns the filter part of the listing.
func (in *JobListInput) Filter() repository.JobFilter {
	if in == nil {
		return repository.JobFilter{}
	}

	return repository.JobFilter{Title: in.Title, Company: in.Company, Search: in.Search}
}

// JobListOutput is one page of jobs plus the total number of matches.
type JobListOutput struct {
	Total int64
	Jobs  []*entity.Job
}

// JobUsecase manages job applications on behalf of their owner.
type JobUsecase interface {
	CreateJob(ctx context.Context, ownerID uuid.UUID, input *JobInput) (*entity.Job, error)
	GetJob(ctx context.Context, ownerID, jobID uuid.UUID) (*entity.Job, error)
	ListJobs(ctx context.Context, ownerID uuid.UUID, input *JobListInput) (*JobListOutput, error)
	SearchJobs(ctx context.Context, ownerID uuid.UUID, input *JobListInput) ([]*entity.Job, error)
	CountJobs(ctx context.Context, ownerID uuid.UUID, filter repository.JobFilter) (int64, error)
	UpdateJob(ctx context.Context, ownerID, jobID uuid.UUID, input *JobInput) (*entity.Job, error)
	DeleteJob(ctx context.Context, ownerID, jobID uuid.UUID) error
}
