// Package sqlite is a bun ORM implementation of store.Store over an
// embedded SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" database/sql driver

	"github.com/BharathRam125/QueueCTL/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ store.Store = (*Store)(nil)

// Store is a bun ORM implementation of store.Store using the SQLite
// dialect. Close closes the underlying *bun.DB.
type Store struct {
	db     *bun.DB
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// New wraps an existing *bun.DB as a Store.
func New(db *bun.DB, opts ...Option) *Store {
	s := &Store{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open opens (creating if necessary) the SQLite file at path and returns
// a ready-to-use Store. WAL mode lets readers (e.g. `queuectl list`)
// proceed without blocking a worker's exclusive claimNextJob transaction;
// the busy timeout turns lock contention into a bounded wait rather than
// an immediate SQLITE_BUSY error. _txlock=immediate makes every
// transaction begin with BEGIN IMMEDIATE.
func Open(path string, opts ...Option) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate", path)
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("queuectl/sqlite: open %s: %w", path, err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	return New(db, opts...), nil
}

// DB returns the underlying *bun.DB for advanced usage.
func (s *Store) DB() *bun.DB {
	return s.db
}

// Migrate runs all embedded SQL migration files in order.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS queuectl_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		var applied bool
		err = s.db.NewSelect().
			ColumnExpr("1").
			TableExpr("queuectl_migrations").
			Where("filename = ?", entry.Name()).
			Limit(1).
			Scan(ctx, &applied)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("queuectl/sqlite: check migration %s: %w", entry.Name(), err)
		}
		if applied {
			continue
		}

		data, readErr := fs.ReadFile(migrationsFS, "migrations/"+entry.Name())
		if readErr != nil {
			return fmt.Errorf("queuectl/sqlite: read migration %s: %w", entry.Name(), readErr)
		}

		if _, execErr := s.db.ExecContext(ctx, string(data)); execErr != nil {
			return fmt.Errorf("queuectl/sqlite: execute migration %s: %w", entry.Name(), execErr)
		}

		if _, recErr := s.db.ExecContext(ctx,
			`INSERT INTO queuectl_migrations (filename, applied_at) VALUES (?, datetime('now'))`,
			entry.Name(),
		); recErr != nil {
			return fmt.Errorf("queuectl/sqlite: record migration %s: %w", entry.Name(), recErr)
		}

		s.logger.Info("applied migration", "file", entry.Name())
	}

	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// isDuplicateKey reports whether err is a SQLite unique constraint
// violation (mattn/go-sqlite3 surfaces these as plain string errors).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isNoRows reports whether err indicates no matching row.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isBusy reports whether err indicates the database was locked past the
// configured busy timeout — the trigger for mapping to ErrStoreBusy.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
