package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jobtracker/internal/delivery/context"
	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/errors"
	"jobtracker/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Logger    *slog.Logger
}

// NewProfileService creates a new profile service instance.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile retrieves the user's profile.
func (srv *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateErr(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "failed to find user")
	}

	return user.WithoutCredentials(), nil
}

// UpdateProfile applies the supplied fields only. A username change is checked for uniqueness.
func (srv *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	var newUsername *string
	if input != nil && input.Username != nil {
		username, err := normalizeUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		newUsername = &username
	}

	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return translateErr(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "failed to find user")
		}

		if newUsername != nil {
			username := *newUsername
			if username != user.Username {
				taken, err := userRepo.ExistsByUsername(ctx, username)
				if err != nil {
					return errors.Wrap(err, "failed to check username")
				}
				if taken {
					return domainerrors.ErrUsernameTaken
				}
				user.Username = username
			}
		}

		applyProfilePatch(user, input)

		if err := userRepo.Update(ctx, user); err != nil {
			return translateErr(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "failed to update user")
		}

		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update profile", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", userID))

	return updated.WithoutCredentials(), nil
}

// DeleteAccount removes the user; the storage layer cascades the user's jobs.
func (srv *profileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, userID); err != nil {
		return translateErr(err, repository.ErrUserNotFound, domainerrors.ErrUserNotFound, "failed to delete user")
	}

	srv.log(ctx).Info("Account deleted", slog.Any("userID", userID))

	return nil
}

func applyProfilePatch(user *entity.User, input *usecase.UpdateProfileInput) {
	if input == nil {
		return
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = strings.TrimSpace(*input.Location)
	}
}
