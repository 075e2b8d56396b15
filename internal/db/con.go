package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	// SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/fr0stylo/shopreviews/internal/db/queries"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var driver = "sqlite"

// Database wraps sqlc queries with the shared connection.
type Database struct {
	*queries.Queries
	db      *sql.DB
	tracker *queryLatencyTracker
}

// New opens the SQLite database at the provided path (without the .sqlite suffix)
// and applies pending migrations.
func New(path string, openParams ...string) (*Database, error) {
	if strings.TrimSpace(path) == "" {
		path = "data/reviews"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	dsn := sqliteDSN(path, openParams...)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	tracker := newQueryLatencyTracker()
	wrapped := newInstrumentedDBTX(db, tracker)

	return &Database{db: db, Queries: queries.New(wrapped), tracker: tracker}, nil
}

func sqliteDSN(path string, openParams ...string) string {
	values := url.Values{}
	values.Set("_fk", "1")

	values.Add("_pragma", "foreign_keys(ON)")
	values.Add("_pragma", "journal_mode(WAL)")
	values.Add("_pragma", "synchronous(NORMAL)")
	values.Add("_pragma", "busy_timeout(5000)")
	values.Add("_pragma", "temp_store(MEMORY)")

	for _, param := range openParams {
		part := strings.TrimSpace(strings.TrimPrefix(param, "&"))
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		values.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	return fmt.Sprintf("file:%s.sqlite?%s", path, values.Encode())
}

// Close closes the underlying database connection.
func (c *Database) Close() error {
	return c.db.Close()
}

// WithTx runs fn inside a transaction. The transaction is rolled back when fn
// fails and committed otherwise.
func (c *Database) WithTx(ctx context.Context, fn func(*queries.Queries) error) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(queries.New(newInstrumentedDBTX(tx, c.tracker))); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}
		return err
	}
	return tx.Commit()
}
