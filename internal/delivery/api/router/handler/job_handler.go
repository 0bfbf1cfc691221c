package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"jobtracker/internal/delivery/api/middleware"
	"jobtracker/internal/delivery/api/response"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// JobHandlerParams holds dependencies for JobHandler, injected by Fx.
type JobHandlerParams struct {
	fx.In

	JobUC  usecase.JobUsecase
	Logger *slog.Logger
}

// JobHandler serves the current user's job applications
type JobHandler struct {
	jobUC  usecase.JobUsecase
	logger *slog.Logger
}

// NewJobHandler is the constructor for JobHandler
func NewJobHandler(params JobHandlerParams) *JobHandler {
	return &JobHandler{
		jobUC:  params.JobUC,
		logger: params.Logger,
	}
}

// CreateJob handles job creation
func (h *JobHandler) CreateJob(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req JobRequest
	if err := bindAndValidate(c, &req, "Invalid job input"); err != nil {
		return response.HandleAppError(c, err)
	}

	job, err := h.jobUC.CreateJob(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newJobResponse(job))
}

// ListJobs returns one page of jobs together with the total number of matches
func (h *JobHandler) ListJobs(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req JobQueryRequest
	if err := bindAndValidate(c, &req, "Invalid query parameters"); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.jobUC.ListJobs(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, JobListResponse{
		Total: output.Total,
		Jobs:  newJobResponses(output.Jobs),
	})
}

// SearchJobs returns one page of jobs without the total
func (h *JobHandler) SearchJobs(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req JobQueryRequest
	if err := bindAndValidate(c, &req, "Invalid query parameters"); err != nil {
		return response.HandleAppError(c, err)
	}

	jobs, err := h.jobUC.SearchJobs(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newJobResponses(jobs))
}

// CountJobs returns how many jobs match the filters. Sorting and pagination parameters are ignored.
func (h *JobHandler) CountJobs(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req JobQueryRequest
	if err := bindAndValidate(c, &req, "Invalid query parameters"); err != nil {
		return response.HandleAppError(c, err)
	}

	total, err := h.jobUC.CountJobs(c.Request().Context(), userID, req.toInput().Filter())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, JobCountResponse{TotalJobs: total})
}

// GetJob returns a single job
func (h *JobHandler) GetJob(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	jobID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	job, err := h.jobUC.GetJob(c.Request().Context(), userID, jobID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newJobResponse(job))
}

// UpdateJob replaces a job's mutable fields
func (h *JobHandler) UpdateJob(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	jobID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req JobRequest
	if err := bindAndValidate(c, &req, "Invalid job input"); err != nil {
		return response.HandleAppError(c, err)
	}

	job, err := h.jobUC.UpdateJob(c.Request().Context(), userID, jobID, req.toInput())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newJobResponse(job))
}

// DeleteJob deletes a job
func (h *JobHandler) DeleteJob(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	jobID, err := pathID(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.jobUC.DeleteJob(c.Request().Context(), userID, jobID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, fmt.Sprintf("Job with id %s deleted successfully", jobID))
}
