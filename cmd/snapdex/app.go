package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/phrazzld/snapdex/internal/config"
	"github.com/phrazzld/snapdex/internal/generation"
	"github.com/phrazzld/snapdex/internal/kv"
	"github.com/phrazzld/snapdex/internal/platform/gemini"
	"github.com/phrazzld/snapdex/internal/platform/logger"
	"github.com/phrazzld/snapdex/internal/platform/sqlstore"
	"github.com/phrazzld/snapdex/internal/repository"
	"github.com/phrazzld/snapdex/internal/state"
)

// application holds the wired components of one command invocation.
type application struct {
	config *config.Config
	logger *slog.Logger
	store  *state.Store

	closers []func() error
}

// newApplication opens storage, selects the generation backend and loads the
// state store. Components log through the logger carried by ctx.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log := logger.FromContextOrDefault(ctx)
	app := &application{config: cfg, logger: log}

	store, err := openKVStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		app.closers = append(app.closers, closer.Close)
	}

	gen, err := newGenerationService(ctx, cfg.LLM, log)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	repo := repository.NewKVCardRepository(store, log)
	stateStore, err := state.New(ctx, repo, gen,
		state.WithLogger(log),
		state.WithSampleCards(cfg.App.SeedSamples),
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create state store: %w", err)
	}
	app.store = stateStore
	// Runs first so in-flight generation stops before storage closes.
	app.closers = append([]func() error{stateStore.Close}, app.closers...)

	return app, nil
}

// cleanup releases resources in reverse order of acquisition.
func (app *application) cleanup() {
	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil {
			app.logger.Error("failed to release resource", "error", err)
		}
	}
	app.closers = nil
}

// openKVStore opens the configured key-value backend, wrapped in a read
// cache when one is configured.
func openKVStore(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (kv.Store, error) {
	var store kv.Store
	switch cfg.Driver {
	case config.StorageMemory:
		store = kv.NewMemoryStore()
	case config.StorageSQLite:
		s, err := sqlstore.OpenSQLite(ctx, cfg.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		store = s
	case config.StoragePostgres:
		s, err := sqlstore.OpenPostgres(ctx, cfg.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		store = s
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	if cfg.CacheSize <= 0 {
		return store, nil
	}
	cached, err := kv.NewCachedStore(store, cfg.CacheSize, logger)
	if err != nil {
		if closer, ok := store.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to create storage cache: %w", err)
	}
	return cached, nil
}

// newGenerationService selects the card generation backend.
func newGenerationService(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Service, error) {
	switch cfg.Provider {
	case config.ProviderMock:
		return generation.NewMockService(), nil
	case config.ProviderPlaceholder:
		delay, err := cfg.PlaceholderDelayDuration()
		if err != nil {
			return nil, err
		}
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return generation.NewPlaceholderService(rand.New(rand.NewSource(seed)), delay), nil
	case config.ProviderGemini:
		svc, err := gemini.NewService(ctx, logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini service: %w", err)
		}
		return svc, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
