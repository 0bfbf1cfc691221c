package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"jobtracker/config"
	"jobtracker/internal/domain/repository"
	mockRepo "jobtracker/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      4,
			AccessTokenTTL:  15 * time.Minute,
			LoginIdentifier: config.LoginByEither,
		},
		Pagination: &config.PaginationConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
	}
}

// expectTx runs the transaction body against factory and returns its error, as the real manager would.
func expectTx(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}
