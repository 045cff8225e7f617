package config

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"billable-timer/internal/repository/file"
	"billable-timer/internal/repository/sqlite"
	"billable-timer/internal/services"
)

// Stores bundles the project store and ledger of the configured backend
type Stores struct {
	Projects services.ProjectStore
	Ledger   services.Ledger
	close    func() error
}

// Close releases the backend's resources
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// CreateStores opens the persistence backend selected by storage.backend
func CreateStores(ctx context.Context, cfg *Config, logger zerolog.Logger) (*Stores, error) {
	dirPerm := os.FileMode(cfg.Storage.DirPermissions)

	switch cfg.Storage.Backend {
	case BackendSQLite:
		if err := os.MkdirAll(cfg.Storage.DataDir, dirPerm); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		repo, err := sqlite.New(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		store := services.NewSQLiteStore(repo, logger)
		return &Stores{Projects: store, Ledger: store, close: repo.Close}, nil

	case BackendFile:
		projects, err := file.NewProjectFile(cfg.ProjectsPath(), dirPerm)
		if err != nil {
			return nil, err
		}
		ledger, err := file.NewCSVLedger(cfg.LedgerPath(), dirPerm, logger)
		if err != nil {
			return nil, err
		}
		return &Stores{Projects: projects, Ledger: ledger}, nil

	default:
		return nil, &ConfigError{Field: "storage.backend", Message: fmt.Sprintf("unknown backend %q", cfg.Storage.Backend)}
	}
}

// CreateTestStores opens an in-memory SQLite backend
func CreateTestStores(ctx context.Context) (*Stores, error) {
	repo, err := sqlite.New(ctx, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	store := services.NewSQLiteStore(repo, zerolog.Nop())
	return &Stores{Projects: store, Ledger: store, close: repo.Close}, nil
}
