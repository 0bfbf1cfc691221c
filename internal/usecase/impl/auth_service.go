// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"jobtracker/config"
	deliverycontext "jobtracker/internal/delivery/context"
	"jobtracker/internal/domain/entity"
	domainerrors "jobtracker/internal/domain/errors"
	"jobtracker/internal/domain/repository"
	"jobtracker/internal/domain/service"
	"jobtracker/internal/errors"
	"jobtracker/internal/usecase"

	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	hasher          service.PasswordHasher
	tokenService    service.TokenService
	accessTokenTTL  time.Duration
	loginIdentifier string
	ambiguousErrors bool
	logger          *slog.Logger

	decoyOnce sync.Once
	decoyHash string
}

// Bounds of a username once surrounding whitespace is removed.
const (
	minUsernameLength = 3
	maxUsernameLength = 50
)

// decoyPassword is hashed once and checked against when a login names no
// account, so unknown identifiers cost the same bcrypt work as known ones.
const decoyPassword = "Decoy-Passw0rd-For-Unknown-Logins!"

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	srv := &authService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		hasher:          params.Hasher,
		tokenService:    params.TokenService,
		accessTokenTTL:  config.DefaultAccessTokenTTL,
		loginIdentifier: config.LoginByEither,
		logger:          params.Logger,
	}

	if params.Config != nil && params.Config.Auth != nil {
		if params.Config.Auth.AccessTokenTTL > 0 {
			srv.accessTokenTTL = params.Config.Auth.AccessTokenTTL
		}
		if params.Config.Auth.LoginIdentifier != "" {
			srv.loginIdentifier = params.Config.Auth.LoginIdentifier
		}
		srv.ambiguousErrors = params.Config.Auth.AmbiguousRegistrationErrors
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. Email and username uniqueness are checked
// first, in that order; the unique constraints catch registrations that race past the checks.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	email := normalizeEmail(input.Email)
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting registration", slog.String("username", username))

	var registered *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		emailTaken, err := userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return errors.Wrap(err, "failed to check email")
		}
		if emailTaken {
			return domainerrors.ErrEmailAlreadyRegistered
		}

		usernameTaken, err := userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return errors.Wrap(err, "failed to check username")
		}
		if usernameTaken {
			return domainerrors.ErrUsernameTaken
		}

		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			if _, ok := errors.AsType[domainerrors.AppError](err); ok {
				return err
			}

			return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}

		user := &entity.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
			FirstName:    strings.TrimSpace(input.FirstName),
			LastName:     strings.TrimSpace(input.LastName),
			Bio:          input.Bio,
			Location:     strings.TrimSpace(input.Location),
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		registered = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", username), slog.Any("error", err))

		return nil, srv.registrationError(err)
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registered.ID))

	return registered.WithoutCredentials(), nil
}

// registrationError collapses the duplicate email and username errors into one
// when the deployment does not want to reveal which field collided.
func (srv *authService) registrationError(err error) error {
	if srv.ambiguousErrors &&
		(errors.Is(err, domainerrors.ErrEmailAlreadyRegistered) || errors.Is(err, domainerrors.ErrUsernameTaken)) {
		return domainerrors.ErrAlreadyRegistered
	}

	return errors.Wrap(err, "failed to execute registration transaction")
}

// Login verifies the credentials and issues an access token whose subject is the user ID.
// An unknown identifier, an inactive account and a wrong password are indistinguishable.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" {
		srv.rejectUnknown(ctx, input.Password)

		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.rejectUnknown(ctx, input.Password)

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) || !user.IsActive {
		srv.log(ctx).Info("Login rejected", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	issued, err := srv.tokenService.GenerateToken(user.ID, srv.accessTokenTTL)
	if err != nil {
		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Debug("Login succeeded", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: issued.Token,
		TokenType:   usecase.TokenTypeBearer,
		ExpiresAt:   issued.ExpiresAt,
		ExpiresIn:   srv.accessTokenTTL,
		User:        user.WithoutCredentials(),
	}, nil
}

// rejectUnknown spends one password check on the decoy hash before a login for
// a missing account is refused.
func (srv *authService) rejectUnknown(ctx context.Context, password string) {
	srv.decoyOnce.Do(func() {
		hash, err := srv.hasher.Hash(decoyPassword)
		if err != nil {
			srv.log(ctx).Warn("Failed to prepare decoy password hash", slog.Any("error", err))

			return
		}
		srv.decoyHash = hash
	})

	srv.hasher.Check(password, srv.decoyHash)
	srv.log(ctx).Info("Login rejected: unknown identifier")
}

func (srv *authService) findByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	switch srv.loginIdentifier {
	case config.LoginByEmail:
		return srv.userRepo.FindByEmail(ctx, normalizeEmail(identifier))
	case config.LoginByUsername:
		return srv.userRepo.FindByUsername(ctx, identifier)
	default:
		if strings.Contains(identifier, "@") {
			return srv.userRepo.FindByEmail(ctx, normalizeEmail(identifier))
		}

		return srv.userRepo.FindByUsername(ctx, identifier)
	}
}

// Resolve turns a bearer token into the current user. Invalid or expired tokens,
// and tokens whose user was deleted or deactivated, all yield ErrUnauthorized.
func (srv *authService) Resolve(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Token rejected", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthorized
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Token subject no longer exists", slog.Any("userID", userID))

			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to resolve token subject")
	}

	if !user.IsActive {
		return nil, domainerrors.ErrUnauthorized
	}

	return user.WithoutCredentials(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeUsername trims the username and checks its length afterwards, so a
// value padded to the minimum with spaces is rejected.
func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return "", domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("username: must be %d to %d characters", minUsernameLength, maxUsernameLength))
	}

	return username, nil
}
