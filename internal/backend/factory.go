package backend

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/core"
	"tally/internal/seed"
	"tally/internal/store/memory"
	"tally/internal/store/sqlite"
)

type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend builds the configured backend and seeds it with the session's
// starting dataset.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	var result *BackendResult
	var err error
	switch config.Type {
	case MemoryBackend:
		result, err = f.createMemoryBackend(config)
	case SQLiteBackend:
		result, err = f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	if err := f.seedBackend(ctx, config, result); err != nil {
		if result.Cleanup != nil {
			result.Cleanup()
		}
		return nil, err
	}

	return result, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	s := memory.New(config.IDGenerator)

	f.logger.Info("Initialized memory backend")

	return &BackendResult{
		Transactions: s.Transactions(),
		Appointments: s.Appointments(),
		Cleanup:      nil,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := sqlite.NewRepository(config.SQLiteDSN, config.IDGenerator)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite backend", "dsn", config.SQLiteDSN)

	return &BackendResult{
		Transactions: repo.Transactions(),
		Appointments: repo.Appointments(),
		Cleanup:      repo.Close,
	}, nil
}

func (f *DefaultFactory) seedBackend(ctx context.Context, config Config, result *BackendResult) error {
	today := core.Today()

	ds := seed.Default(today)
	if config.SeedFile != "" {
		loaded, err := seed.Load(config.SeedFile, today)
		if err != nil {
			return fmt.Errorf("load seed file: %w", err)
		}
		ds = loaded
		f.logger.Info("Loaded seed dataset from file", "path", config.SeedFile)
	}

	if err := seed.Apply(ctx, ds, result.Transactions, result.Appointments); err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}

	f.logger.Info("Seeded backend",
		"transactions", len(ds.Transactions),
		"appointments", len(ds.Appointments))
	return nil
}
