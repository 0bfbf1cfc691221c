package handler

import (
	"fmt"
	"net/http"
	"testing"

	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestJob(ownerID uuid.UUID, title, company string) *entity.Job {
	return &entity.Job{
		ID:         uuid.Must(uuid.NewV7()),
		OwnerID:    ownerID,
		Title:      title,
		Company:    company,
		Status:     entity.JobStatusApplied,
		DatePosted: testTime(),
		CreatedAt:  testTime(),
		UpdatedAt:  testTime(),
	}
}

func TestJobHandler_CreateJob(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		categoryID := uuid.Must(uuid.NewV7())
		job := newTestJob(fx.user.ID, "Backend Engineer", "Acme")
		job.CategoryID = &categoryID
		job.Category = &entity.Category{ID: categoryID, Name: "Software Development"}

		fx.jobUC.EXPECT().
			CreateJob(mock.Anything, fx.user.ID, mock.MatchedBy(func(in *usecase.JobInput) bool {
				return in.Title == "Backend Engineer" && in.Company == "Acme" &&
					in.CategoryID != nil && *in.CategoryID == categoryID &&
					in.Salary != nil && *in.Salary == 120000 &&
					in.Status == "" && in.DatePosted == nil
			})).
			Return(job, nil)

		body := fmt.Sprintf(`{"title":"Backend Engineer","company":"Acme","salary":120000,"category_id":%q}`, categoryID)
		rec := fx.do(http.MethodPost, "/jobs", body, testToken)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp JobResponse
		decodeData(t, rec, &resp)
		assert.Equal(t, job.ID, resp.ID)
		assert.Equal(t, entity.JobStatusApplied, resp.Status)
		require.NotNil(t, resp.Category)
		assert.Equal(t, "Software Development", resp.Category.Name)
	})

	t.Run("title too short", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		rec := fx.do(http.MethodPost, "/jobs", `{"title":"A","company":"Acme"}`, testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.Contains(t, env.Error.Details, "title")
	})

	t.Run("malformed category id", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		rec := fx.do(http.MethodPost, "/jobs", `{"title":"Backend","company":"Acme","category_id":"nope"}`, testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()
		fx.jobUC.EXPECT().CreateJob(mock.Anything, fx.user.ID, mock.Anything).Return(nil, domainerrors.ErrCategoryNotFound)

		body := fmt.Sprintf(`{"title":"Backend","company":"Acme","category_id":%q}`, uuid.Must(uuid.NewV7()))
		rec := fx.do(http.MethodPost, "/jobs", body, testToken)

		require.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CATEGORY_NOT_FOUND", env.Error.Code)
	})

	t.Run("requires token", func(t *testing.T) {
		fx := newAPIFixtures(t)

		rec := fx.do(http.MethodPost, "/jobs", `{"title":"Backend","company":"Acme"}`, "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestJobHandler_ListJobs(t *testing.T) {
	t.Run("binds query parameters", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		jobs := []*entity.Job{newTestJob(fx.user.ID, "Go Developer", "Globex")}
		fx.jobUC.EXPECT().
			ListJobs(mock.Anything, fx.user.ID, &usecase.JobListInput{
				Title:     "dev",
				Company:   "glo",
				Search:    "go",
				SortBy:    repository.SortByCompany,
				SortOrder: repository.SortDesc,
				Skip:      1,
				Limit:     1,
			}).
			Return(&usecase.JobListOutput{Total: 3, Jobs: jobs}, nil)

		rec := fx.do(http.MethodGet, "/jobs/?title=dev&company=glo&search=go&sort_by=company&sort_order=desc&skip=1&limit=1", "", testToken)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp JobListResponse
		decodeData(t, rec, &resp)
		assert.Equal(t, int64(3), resp.Total)
		require.Len(t, resp.Jobs, 1)
		assert.Equal(t, "Go Developer", resp.Jobs[0].Title)
	})

	t.Run("negative skip", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		rec := fx.do(http.MethodGet, "/jobs?skip=-1", "", testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	})

	t.Run("non numeric limit", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		rec := fx.do(http.MethodGet, "/jobs?limit=ten", "", testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("unsupported sort field", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()
		fx.jobUC.EXPECT().
			ListJobs(mock.Anything, fx.user.ID, mock.Anything).
			Return(nil, domainerrors.ErrValidationFailed.WithDetails(`sort_by: unsupported value "salary"`))

		rec := fx.do(http.MethodGet, "/jobs?sort_by=salary", "", testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Details, "sort_by")
	})
}

func TestJobHandler_SearchJobs(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.authenticate()

	jobs := []*entity.Job{
		newTestJob(fx.user.ID, "Go Developer", "Globex"),
		newTestJob(fx.user.ID, "Gopher", "Initech"),
	}
	fx.jobUC.EXPECT().
		SearchJobs(mock.Anything, fx.user.ID, &usecase.JobListInput{Search: "go"}).
		Return(jobs, nil)

	rec := fx.do(http.MethodGet, "/jobs/search?search=go", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []JobResponse
	decodeData(t, rec, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, "Gopher", resp[1].Title)
}

func TestJobHandler_CountJobs(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.authenticate()
	fx.jobUC.EXPECT().
		CountJobs(mock.Anything, fx.user.ID, repository.JobFilter{Company: "acme"}).
		Return(int64(2), nil)

	rec := fx.do(http.MethodGet, "/jobs/count?company=acme&sort_by=title&limit=5", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp JobCountResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, int64(2), resp.TotalJobs)
}

func TestJobHandler_GetJob(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "found", wantCode: http.StatusOK},
		{name: "missing", err: domainerrors.ErrJobNotFound, wantCode: http.StatusNotFound, wantErr: "JOB_NOT_FOUND"},
		{name: "owned by someone else", err: domainerrors.ErrJobForbidden, wantCode: http.StatusForbidden, wantErr: "JOB_ACCESS_FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newAPIFixtures(t)
			fx.authenticate()

			job := newTestJob(fx.user.ID, "Backend Engineer", "Acme")
			if tt.err != nil {
				fx.jobUC.EXPECT().GetJob(mock.Anything, fx.user.ID, job.ID).Return(nil, tt.err)
			} else {
				fx.jobUC.EXPECT().GetJob(mock.Anything, fx.user.ID, job.ID).Return(job, nil)
			}

			rec := fx.do(http.MethodGet, "/jobs/"+job.ID.String(), "", testToken)

			require.Equal(t, tt.wantCode, rec.Code)
			env := decodeEnvelope(t, rec)
			if tt.wantErr == "" {
				assert.Nil(t, env.Error)

				return
			}
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
			assert.NotEmpty(t, env.Meta.RequestID)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		fx := newAPIFixtures(t)
		fx.authenticate()

		rec := fx.do(http.MethodGet, "/jobs/not-a-uuid", "", testToken)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_ID", env.Error.Code)
	})
}

func TestJobHandler_UpdateJob(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.authenticate()

	job := newTestJob(fx.user.ID, "Staff Engineer", "Acme")
	job.Status = entity.JobStatusInterview
	fx.jobUC.EXPECT().
		UpdateJob(mock.Anything, fx.user.ID, job.ID, mock.MatchedBy(func(in *usecase.JobInput) bool {
			return in.Title == "Staff Engineer" && in.Status == entity.JobStatusInterview &&
				in.DatePosted != nil && in.DatePosted.Equal(testTime())
		})).
		Return(job, nil)

	body := `{"title":"Staff Engineer","company":"Acme","status":"interview","date_posted":"2026-03-01T12:00:00Z"}`
	rec := fx.do(http.MethodPut, "/jobs/"+job.ID.String(), body, testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp JobResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, entity.JobStatusInterview, resp.Status)
}

func TestJobHandler_DeleteJob(t *testing.T) {
	fx := newAPIFixtures(t)
	fx.authenticate()

	jobID := uuid.Must(uuid.NewV7())
	fx.jobUC.EXPECT().DeleteJob(mock.Anything, fx.user.ID, jobID).Return(nil)

	rec := fx.do(http.MethodDelete, "/jobs/"+jobID.String(), "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	decodeData(t, rec, &body)
	assert.Equal(t, fmt.Sprintf("Job with id %s deleted successfully", jobID), body["message"])
}
