// ABOUTME: SQLite database connection and lifecycle management
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the single long-lived SQLite connection handle. All stores
// borrow it; none owns it.
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDataDir returns the default data directory following XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/minakami"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "minakami")
}

// DefaultDBPath returns the default database file path.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "minakami.db")
}

// Open opens or creates a SQLite database at the given path. It does
// not create the schema; Bootstrap drives the full startup sequence.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, path: path}, nil
}

// OpenInMemory creates an in-memory SQLite database (for testing).
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// A second pooled connection would see its own empty memory database.
	conn.SetMaxOpenConns(1)

	return &DB{conn: conn, path: ":memory:"}, nil
}

// Bootstrap runs the startup sequence: schema, then migrations, then
// indexes. Migration and index failures are logged but never fatal.
func (db *DB) Bootstrap() error {
	if err := db.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	db.ApplyMigrations()
	db.CreateIndexes()
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn != nil {
		err := db.conn.Close()
		db.conn = nil
		return err
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Exec executes a mutating statement. Driver failures are wrapped in a
// QueryError carrying the statement.
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	if db.conn == nil {
		return nil, ErrNotOpen
	}
	res, err := db.conn.Exec(query, args...)
	if err != nil {
		return nil, &QueryError{Stmt: query, Err: err}
	}
	return res, nil
}

// Query executes a query that returns rows.
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	if db.conn == nil {
		return nil, ErrNotOpen
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, &QueryError{Stmt: query, Err: err}
	}
	return rows, nil
}

// QueryRow executes a query that returns at most one row. Errors are
// deferred to Scan, as with database/sql.
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	if db.conn == nil {
		return nil
	}
	return db.conn.QueryRow(query, args...)
}
