package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jobtracker/config"
	"jobtracker/internal/infra/auth"
	logs "jobtracker/internal/infra/log"
	"jobtracker/internal/infra/persistence/migrations"
	"jobtracker/internal/infra/persistence/postgres"
	"jobtracker/internal/usecase/impl"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Supported subcommands:
// - migrate up|down|status: Manage the database schema
// - seed:                   Insert demo categories, a demo user and sample jobs

func main() {
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)

	// migrate parameters
	migrateDir := migrateCmd.String("dir", "", "Read migrations from this directory instead of the embedded set")

	// seed parameters
	seedJobs := seedCmd.Int("jobs", defaultSeedJobs, "Number of sample jobs to create for the demo user")
	seedRandom := seedCmd.Uint64("rand-seed", 0, "Seed for sample job generation (0 picks one from the clock)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flags := adminFlags{
		Migrate: migrateFlags{
			cmd: migrateCmd,
			dir: migrateDir,
		},
		Seed: seedFlags{
			cmd:        seedCmd,
			jobs:       seedJobs,
			randomSeed: seedRandom,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type adminFlags struct {
	Migrate migrateFlags
	Seed    seedFlags
}

type migrateFlags struct {
	cmd *flag.FlagSet
	dir *string
}

type seedFlags struct {
	cmd        *flag.FlagSet
	jobs       *int
	randomSeed *uint64
}

func runSubcommand(ctx context.Context, flags *adminFlags) error {
	switch os.Args[1] {
	case "migrate":
		return handleMigrate(ctx, flags)
	case "seed":
		return handleSeed(ctx, flags)
	case "help", "-h", "--help":
		printUsage()

		return nil
	default:
		printUsage()

		return errors.Errorf("unknown subcommand: %s", os.Args[1])
	}
}

// environment is what every subcommand needs: config, logger and an open database.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
	sqlDB  *sql.DB
}

func openEnvironment() (*environment, func(), error) {
	cfg, err := config.New()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return nil, nil, errors.Wrap(err, "create logger")
	}

	db, err := postgres.Open(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := postgres.NewSQLDB(db)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Warn("Failed to close database", slog.Any("error", closeErr))
		}
	}

	return &environment{cfg: cfg, logger: logger, db: db, sqlDB: sqlDB}, closeFn, nil
}

func handleMigrate(ctx context.Context, flags *adminFlags) error {
	if err := flags.Migrate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse migrate flags")
	}

	action := flags.Migrate.cmd.Arg(0)
	if action == "" {
		action = "up"
	}

	env, closeFn, err := openEnvironment()
	if err != nil {
		return err
	}
	defer closeFn()

	sqlDB := env.sqlDB
	driver := env.cfg.Database.Driver
	dir := *flags.Migrate.dir
	if dir == "" {
		dir = env.cfg.Database.MigrationsDir
	}

	switch action {
	case "up":
		return migrations.Up(ctx, sqlDB, driver, dir, env.logger)
	case "down":
		return migrations.Down(ctx, sqlDB, driver, dir, env.logger)
	case "status":
		statuses, err := migrations.Status(ctx, sqlDB, driver, dir)
		if err != nil {
			return err
		}

		fmt.Printf("%-8s  %-10s  %-20s  %s\n", "VERSION", "STATE", "APPLIED AT", "SOURCE")
		for _, status := range statuses {
			appliedAt := "-"
			if !status.AppliedAt.IsZero() {
				appliedAt = status.AppliedAt.Format(time.DateTime)
			}
			fmt.Printf("%-8d  %-10s  %-20s  %s\n", status.Source.Version, status.State, appliedAt, status.Source.Path)
		}

		return nil
	default:
		return errors.Errorf("unknown migrate action: %s (want up, down or status)", action)
	}
}

func handleSeed(ctx context.Context, flags *adminFlags) error {
	if err := flags.Seed.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse seed flags")
	}

	if *flags.Seed.jobs < 0 {
		return errors.New("--jobs must not be negative")
	}

	env, closeFn, err := openEnvironment()
	if err != nil {
		return err
	}
	defer closeFn()

	txManager := postgres.NewTransactionManager(env.db)
	userRepo := postgres.NewUserRepository(env.db)
	jobRepo := postgres.NewJobRepository(env.db)
	categoryRepo := postgres.NewCategoryRepository(env.db)

	tokenService, err := auth.NewJWTService(env.cfg)
	if err != nil {
		return err
	}

	s := &seeder{
		authUC: impl.NewAuthService(impl.AuthServiceParams{
			TxManager: txManager,
			UserRepo:  userRepo,
			// Seeding skips the password strength policy.
			Hasher:       auth.NewBcryptHasherWithCost(env.cfg.Auth.BcryptCost),
			TokenService: tokenService,
			Config:       env.cfg,
			Logger:       env.logger,
		}),
		categoryUC: impl.NewCategoryService(impl.CategoryServiceParams{
			TxManager:    txManager,
			CategoryRepo: categoryRepo,
			Logger:       env.logger,
		}),
		jobUC: impl.NewJobService(impl.JobServiceParams{
			TxManager: txManager,
			JobRepo:   jobRepo,
			Config:    env.cfg,
			Logger:    env.logger,
		}),
		userRepo: userRepo,
		rng:      newRand(*flags.Seed.randomSeed),
		logger:   env.logger,
	}

	return s.run(ctx, *flags.Seed.jobs)
}

func printUsage() {
	fmt.Println("Job tracker administration tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  jobtracker-admin <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate [up|down|status]  Apply, roll back or list schema migrations (default: up)")
	fmt.Println("  seed                      Insert demo categories, the demo user and sample jobs")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  jobtracker-admin migrate up")
	fmt.Println("  jobtracker-admin migrate -dir ./internal/infra/persistence/migrations/postgres status")
	fmt.Println("  jobtracker-admin seed -jobs 20 -rand-seed 42")
}
