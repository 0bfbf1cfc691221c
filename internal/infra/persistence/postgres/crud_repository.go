package postgres

import (
	"context"

	"jobtracker/internal/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCRUD implements the lookup and delete half of repository.CRUDRepository
// for any model/entity pair. Create and Update stay on the concrete
// repositories because each maps constraint violations to its own domain errors.
type gormCRUD[M any, E any] struct {
	db       *gorm.DB
	toDomain func(*M) *E
	notFound error

	// scopes are applied to every FindByID, e.g. to preload associations.
	scopes []func(*gorm.DB) *gorm.DB

	// mapDeleteErr translates constraint failures raised by a delete; nil keeps the generic wrap.
	mapDeleteErr func(error) error
}

// FindByID retrieves a single entity by its primary key.
func (r *gormCRUD[M, E]) FindByID(ctx context.Context, id uuid.UUID) (*E, error) {
	var row M

	if err := r.db.WithContext(ctx).
		Scopes(r.scopes...).
		Where("id = ?", id).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.notFound
		}

		return nil, errors.Wrap(err, "failed to find by ID")
	}

	return r.toDomain(&row), nil
}

// Delete removes the row with the given primary key.
func (r *gormCRUD[M, E]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(new(M))

	if result.Error != nil {
		if r.mapDeleteErr != nil {
			if mapped := r.mapDeleteErr(result.Error); mapped != nil {
				return mapped
			}
		}

		return errors.Wrap(result.Error, "failed to delete")
	}

	if result.RowsAffected == 0 {
		return r.notFound
	}

	return nil
}
