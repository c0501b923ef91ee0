// Package app assembles the analyzer and store from configuration for the
// server and the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"textinsight/internal/analysis"
	"textinsight/internal/config"
	"textinsight/internal/db"
	"textinsight/internal/db/sqlite"
	"textinsight/internal/insight"
	"textinsight/internal/llm"
	"textinsight/internal/metrics"
	"textinsight/internal/store"
)

// App holds the wired components. Repo is nil when no store is configured.
type App struct {
	Config   *config.Config
	Analyzer *analysis.Analyzer
	Repo     store.Repository
	Logger   *slog.Logger

	closers []func()
}

// New builds the analyzer and, when configured, opens the store and runs
// its migrations.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	backend, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm backend: %w", err)
	}
	if backend == nil {
		logger.Info("no llm credential configured, using deterministic summaries", "provider", cfg.LLM.Provider)
	} else {
		logger.Info("llm backend configured", "provider", backend.Name(), "model", cfg.LLM.Model)
		if c, ok := backend.(io.Closer); ok {
			a.closers = append(a.closers, func() { c.Close() })
		}
	}

	generator := insight.New(backend,
		insight.WithStructuredOutput(cfg.LLM.StructuredOutput),
		insight.WithTimeout(cfg.LLM.Timeout),
		insight.WithLogger(logger),
	)
	a.Analyzer = analysis.New(generator)

	repo, closeRepo, err := OpenStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	if repo != nil {
		a.Repo = repo
		a.closers = append(a.closers, closeRepo)
		logger.Info("store configured", "driver", cfg.StoreDriver)
	}

	return a, nil
}

// OpenStore opens the configured repository. It returns a nil Repository
// when cfg has no store driver.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreNone:
		return nil, func() {}, nil
	case config.StorePostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return database, database.Close, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// SentimentCounter returns the store as a metrics.SentimentCounter, or nil.
func (a *App) SentimentCounter() metrics.SentimentCounter {
	if c, ok := a.Repo.(metrics.SentimentCounter); ok {
		return c
	}
	return nil
}

// Pinger returns the store as a store.Pinger, or nil.
func (a *App) Pinger() store.Pinger {
	if p, ok := a.Repo.(store.Pinger); ok {
		return p
	}
	return nil
}

// Pruner returns the store as a store.Pruner, or nil.
func (a *App) Pruner() store.Pruner {
	if p, ok := a.Repo.(store.Pruner); ok {
		return p
	}
	return nil
}

// Close releases the store and backend clients in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
