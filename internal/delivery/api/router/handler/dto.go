package handler

import (
	"time"

	"jobtracker/internal/domain/entity"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
)

// UserResponse is the public view of a user. The password hash is never part of it.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Bio       string    `json:"bio"`
	Location  string    `json:"location"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Location:  user.Location,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newCategoryResponse(category *entity.Category) *CategoryResponse {
	if category == nil {
		return nil
	}

	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func newCategoryResponses(categories []*entity.Category) []*CategoryResponse {
	out := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, newCategoryResponse(category))
	}

	return out
}

// JobResponse is the public view of a job application
type JobResponse struct {
	ID          uuid.UUID         `json:"id"`
	OwnerID     uuid.UUID         `json:"owner_id"`
	CategoryID  *uuid.UUID        `json:"category_id"`
	Category    *CategoryResponse `json:"category"`
	Title       string            `json:"title"`
	Company     string            `json:"company"`
	Location    string            `json:"location"`
	Description string            `json:"description"`
	Salary      *float64          `json:"salary"`
	URL         string            `json:"url"`
	Notes       string            `json:"notes"`
	Status      entity.JobStatus  `json:"status"`
	DatePosted  time.Time         `json:"date_posted"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func newJobResponse(job *entity.Job) *JobResponse {
	if job == nil {
		return nil
	}

	return &JobResponse{
		ID:          job.ID,
		OwnerID:     job.OwnerID,
		CategoryID:  job.CategoryID,
		Category:    newCategoryResponse(job.Category),
		Title:       job.Title,
		Company:     job.Company,
		Location:    job.Location,
		Description: job.Description,
		Salary:      job.Salary,
		URL:         job.URL,
		Notes:       job.Notes,
		Status:      job.Status,
		DatePosted:  job.DatePosted,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

func newJobResponses(jobs []*entity.Job) []*JobResponse {
	out := make([]*JobResponse, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, newJobResponse(job))
	}

	return out
}

// JobListResponse is one page of jobs with the total before pagination
type JobListResponse struct {
	Total int64          `json:"total"`
	Jobs  []*JobResponse `json:"jobs"`
}

// JobCountResponse carries the number of matching jobs
type JobCountResponse struct {
	TotalJobs int64 `json:"total_jobs"`
}

// TokenRequest is the password grant body. It is accepted as form data or JSON.
type TokenRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// TokenResponse follows the OAuth2 token endpoint format and is not enveloped.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Bio       string `json:"bio" validate:"max=1000"`
	Location  string `json:"location" validate:"max=100"`
}

func (r *RegisterRequest) toInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Location:  r.Location,
	}
}

// UpdateProfileRequest represents a partial profile update. Omitted fields are unchanged.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=50"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	Location  *string `json:"location" validate:"omitempty,max=100"`
}

func (r *UpdateProfileRequest) toInput() *usecase.UpdateProfileInput {
	return &usecase.UpdateProfileInput{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Location:  r.Location,
	}
}

// JobRequest represents the request body for creating or replacing a job
type JobRequest struct {
	CategoryID  *uuid.UUID `json:"category_id"`
	Title       string     `json:"title" validate:"required,min=2,max=100"`
	Company     string     `json:"company" validate:"required,min=2,max=100"`
	Location    string     `json:"location" validate:"max=100"`
	Description string     `json:"description"`
	Salary      *float64   `json:"salary" validate:"omitempty,gte=0"`
	URL         string     `json:"url" validate:"omitempty,url,max=500"`
	Notes       string     `json:"notes"`
	Status      string     `json:"status" validate:"max=50"`
	DatePosted  *time.Time `json:"date_posted"`
}

func (r *JobRequest) toInput() *usecase.JobInput {
	return &usecase.JobInput{
		CategoryID:  r.CategoryID,
		Title:       r.Title,
		Company:     r.Company,
		Location:    r.Location,
		Description: r.Description,
		Salary:      r.Salary,
		URL:         r.URL,
		Notes:       r.Notes,
		Status:      entity.JobStatus(r.Status),
		DatePosted:  r.DatePosted,
	}
}

// JobQueryRequest holds the query parameters shared by the job listing endpoints
type JobQueryRequest struct {
	Title     string `query:"title"`
	Company   string `query:"company"`
	Search    string `query:"search"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
	Skip      int    `query:"skip" validate:"gte=0"`
	Limit     int    `query:"limit" validate:"gte=0"`
}

func (r *JobQueryRequest) toInput() *usecase.JobListInput {
	return &usecase.JobListInput{
		Title:     r.Title,
		Company:   r.Company,
		Search:    r.Search,
		SortBy:    repository.SortField(r.SortBy),
		SortOrder: repository.SortOrder(r.SortOrder),
		Skip:      r.Skip,
		Limit:     r.Limit,
	}
}

// CategoryRequest represents the request body for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
