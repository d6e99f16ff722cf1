package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/phrazzld/snapdex/internal/kv"
	"github.com/phrazzld/snapdex/internal/redact"
)

// Store implements kv.Store on top of a SQL database.
type Store struct {
	db      *sql.DB
	dialect dialect
	logger  *slog.Logger
}

var _ kv.Store = (*Store)(nil)

// OpenSQLite opens (creating if needed) a SQLite database at path and applies
// migrations. The special path ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path)
	}
	dsn += "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	return open(ctx, db, sqliteDialect, logger.With("path", path))
}

// OpenPostgres connects to the PostgreSQL database at url and applies migrations.
func OpenPostgres(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("postgres url cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	return open(ctx, db, postgresDialect, logger.With("url", redact.String(url)))
}

func open(ctx context.Context, db *sql.DB, d dialect, logger *slog.Logger) (*Store, error) {
	logger = logger.With("component", "sqlstore", "dialect", d.name)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", d.name, err)
	}

	if err := migrate(ctx, db, d, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.InfoContext(ctx, "key-value store opened")
	return &Store{db: db, dialect: d, logger: logger}, nil
}

// Get implements kv.Store.Get.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read key", "key", key, "error", err)
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Put implements kv.Store.Put.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, s.dialect.putQuery, key, value, time.Now().UTC().UnixMilli())
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to write key", "key", key, "error", err)
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Increment implements kv.Store.Increment.
func (s *Store) Increment(ctx context.Context, key string) (int64, error) {
	var value int64
	if err := s.db.QueryRowContext(ctx, s.dialect.incrQuery, key).Scan(&value); err != nil {
		s.logger.ErrorContext(ctx, "failed to increment counter", "key", key, "error", err)
		return 0, fmt.Errorf("failed to increment counter %q: %w", key, err)
	}
	return value, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
