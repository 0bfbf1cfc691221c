package usecase

import (
	"context"

	"jobtracker/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// UpdateProfileInput is a partial update: nil fields are left unchanged.
type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Bio       *string
	Location  *string
}

// IsEmpty reports whether the patch carries no field at all.
func (in *UpdateProfileInput) IsEmpty() bool {
	return in == nil ||
		(in.Username == nil && in.FirstName == nil && in.LastName == nil && in.Bio == nil && in.Location == nil)
}
