package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// migrate applies every pending migration for the given dialect.
func migrate(ctx context.Context, db *sql.DB, d dialect, logger *slog.Logger) error {
	fsys, err := fs.Sub(migrationsFS, "migrations/"+d.name)
	if err != nil {
		return fmt.Errorf("failed to open %s migrations: %w", d.name, err)
	}

	provider, err := goose.NewProvider(d.gooseDialect, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, result := range results {
		logger.InfoContext(ctx, "applied migration",
			"dialect", d.name,
			"version", result.Source.Version,
			"duration_ms", result.Duration.Milliseconds())
	}
	return nil
}
