// ABOUTME: Error types for the storage layer
// ABOUTME: Lifecycle sentinels plus a statement-carrying query error
package sqlite

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotOpen is returned when a statement runs against a closed or
// never-opened database handle.
var ErrNotOpen = errors.New("database is not open")

// ErrNotInitialized is returned by facade methods called before
// Initialize.
var ErrNotInitialized = errors.New("storage is not initialized")

// QueryError wraps a driver failure with the statement that caused it.
type QueryError struct {
	Stmt string
	Err  error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (stmt: %s)", e.Err, strings.Join(strings.Fields(e.Stmt), " "))
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
