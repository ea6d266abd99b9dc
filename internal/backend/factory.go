package backend

import (
	"context"
	"fmt"
	"log/slog"

	applog "expenses/internal/log"
	"expenses/internal/store/csvfile"
	"expenses/internal/store/memory"
	"expenses/internal/store/sqlite"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	base   *slog.Logger
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		base:   logger,
		logger: applog.WithComponent(logger, applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(_ context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case CSVBackend:
		return f.createCSVBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) storageLogger() *slog.Logger {
	return applog.WithComponent(f.base, applog.ComponentStorage)
}

func (f *DefaultFactory) createCSVBackend(config Config) (*BackendResult, error) {
	s := csvfile.New(config.CSVPath, f.storageLogger())
	f.logger.Debug("Initialized csv backend", applog.FieldPath, config.CSVPath)
	return &BackendResult{Store: s}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	s, err := sqlite.Open(config.SQLitePath, f.storageLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store: %w", err)
	}
	f.logger.Debug("Initialized SQLite backend", applog.FieldPath, config.SQLitePath)
	return &BackendResult{Store: s, Cleanup: s.Close}, nil
}

func (f *DefaultFactory) createMemoryBackend() (*BackendResult, error) {
	f.logger.Debug("Initialized memory backend")
	return &BackendResult{Store: memory.New()}, nil
}
