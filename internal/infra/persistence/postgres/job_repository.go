package postgres

import (
	"context"
	"strings"
	"time"

	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/errors"
	"jobtracker/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// jobUpdateColumns are the columns a full job update replaces.
var jobUpdateColumns = []string{
	"category_id", "title", "company", "location", "description",
	"salary", "url", "notes", "status", "date_posted", "updated_at",
}

// likeEscaper escapes LIKE wildcards in user input; patterns use ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// jobRepository implements the repository.JobRepository interface.
type jobRepository struct {
	*gormCRUD[model.JobModel, entity.Job]
}

// NewJobRepository is the constructor for jobRepository.
func NewJobRepository(db *gorm.DB) repository.JobRepository {
	return &jobRepository{
		gormCRUD: &gormCRUD[model.JobModel, entity.Job]{
			db:       db,
			toDomain: toJobDomain,
			notFound: repository.ErrJobNotFound,
			scopes:   []func(*gorm.DB) *gorm.DB{preloadCategory},
		},
	}
}

// Create persists a new job.
func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	jobM := fromJobDomain(job)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(jobM).Error; err != nil {
		return jobWriteError(err, "failed to create job")
	}

	// Update the entity with generated values
	job.ID = jobM.ID
	job.CreatedAt = jobM.CreatedAt
	job.UpdatedAt = jobM.UpdatedAt

	return nil
}

// Update replaces every mutable column of an existing job.
func (repo *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	jobM := fromJobDomain(job)
	jobM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(jobM).
		Omit(clause.Associations).
		Select(jobUpdateColumns).
		Updates(jobM)

	if result.Error != nil {
		return jobWriteError(result.Error, "failed to update job")
	}

	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	job.UpdatedAt = jobM.UpdatedAt

	return nil
}

// Search returns one page of the owner's matching jobs and the unpaginated total.
func (repo *jobRepository) Search(ctx context.Context, ownerID uuid.UUID, query repository.JobQuery) ([]*entity.Job, int64, error) {
	base := repo.filtered(ctx, ownerID, query.Filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count jobs")
	}

	var jobModels []*model.JobModel
	if err := base.
		Scopes(preloadCategory, orderJobs(query.Sort)).
		Offset(query.Page.Skip).
		Limit(query.Page.Limit).
		Find(&jobModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to search jobs")
	}

	jobs := make([]*entity.Job, 0, len(jobModels))
	for _, jobM := range jobModels {
		jobs = append(jobs, toJobDomain(jobM))
	}

	return jobs, total, nil
}

// Count returns how many of the owner's jobs match the filter.
func (repo *jobRepository) Count(ctx context.Context, ownerID uuid.UUID, filter repository.JobFilter) (int64, error) {
	var total int64
	if err := repo.filtered(ctx, ownerID, filter).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count jobs")
	}

	return total, nil
}

// CountByCategory returns how many jobs reference the category.
func (repo *jobRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).
		Model(&model.JobModel{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count jobs by category")
	}

	return total, nil
}

// filtered builds the owner-scoped, filtered base query. The returned session
// can be reused for both the count and the page query.
func (repo *jobRepository) filtered(ctx context.Context, ownerID uuid.UUID, filter repository.JobFilter) *gorm.DB {
	q := repo.db.WithContext(ctx).
		Model(&model.JobModel{}).
		Where("owner_id = ?", ownerID)
	fold := caseFolderFor(repo.db)

	if filter.Title != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(filter.Title, fold))
	}
	if filter.Company != "" {
		q = q.Where(`LOWER(company) LIKE ? ESCAPE '\'`, containsPattern(filter.Company, fold))
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search, fold)
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(company) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	return q.Session(&gorm.Session{})
}

// caseFolderFor lowercases search input the way the database's LOWER() does.
// SQLite's LOWER() only folds ASCII letters, so non-ASCII input keeps its case
// there and matches case-sensitively.
func caseFolderFor(db *gorm.DB) func(string) string {
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		return asciiLower
	}

	return strings.ToLower
}

func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}

		return r
	}, s)
}

func containsPattern(value string, fold func(string) string) string {
	return "%" + likeEscaper.Replace(fold(value)) + "%"
}

func preloadCategory(db *gorm.DB) *gorm.DB {
	return db.Preload("Category")
}

// orderJobs sorts by a whitelisted column; id breaks ties so pages are stable.
func orderJobs(sort repository.JobSort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		field := sort.Field
		if !field.IsValid() {
			field = repository.SortByID
		}
		desc := sort.Order == repository.SortDesc

		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: string(field)}, Desc: desc})
		if field != repository.SortByID {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: string(repository.SortByID)}, Desc: desc})
		}

		return db
	}
}

func jobWriteError(err error, details string) error {
	if isForeignKeyConstraintViolation(err) {
		if violationMentions(err, "owner") {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.ErrCategoryNotFound
	}
	if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WithDetails(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

// toJobDomain converts a GORM JobModel to a domain Job entity.
func toJobDomain(data *model.JobModel) *entity.Job {
	if data == nil {
		return nil
	}

	return &entity.Job{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		CategoryID:  data.CategoryID,
		Category:    toCategoryDomain(data.Category),
		Title:       data.Title,
		Company:     data.Company,
		Location:    data.Location,
		Description: data.Description,
		Salary:      data.Salary,
		URL:         data.URL,
		Notes:       data.Notes,
		Status:      entity.JobStatus(data.Status),
		DatePosted:  data.DatePosted,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromJobDomain converts a domain Job entity to a GORM JobModel. The category
// association is left empty; only the foreign key is written.
func fromJobDomain(data *entity.Job) *model.JobModel {
	if data == nil {
		return nil
	}

	return &model.JobModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		CategoryID:  data.CategoryID,
		Title:       data.Title,
		Company:     data.Company,
		Location:    data.Location,
		Description: data.Description,
		Salary:      data.Salary,
		URL:         data.URL,
		Notes:       data.Notes,
		Status:      string(data.Status),
		DatePosted:  data.DatePosted,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
