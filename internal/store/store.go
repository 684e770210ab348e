// Package store provides durable storage for inspection points behind a
// narrow read/write interface.
//
// Two backends implement the interface: SQLite (the default, suitable for
// single-host tooling) and PostgreSQL (for shared databases). Both consume
// the same declarative filter descriptions via filtersql, so a query means
// the same thing regardless of backend. Adapters are plain values handed to
// their consumers - nothing in this package holds global connection state.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kangyi02/DaoAI-assessment/internal/filter"
	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

// Supported driver names for Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Store is the read/write contract the rest of the system depends on.
//
// Fetch methods return an empty slice, never nil, when nothing matches;
// absence of points is an answer, not an error. Row order is unspecified -
// callers needing order sort on their side.
type Store interface {
	// FetchByFilter returns every point selected by the filter description.
	FetchByFilter(ctx context.Context, f filter.Filter) ([]inspection.Point, error)

	// FetchByIDs returns the points whose ids appear in ids. Unknown ids are
	// skipped silently. An empty id list returns an empty slice without
	// touching the database.
	FetchByIDs(ctx context.Context, ids []int64) ([]inspection.Point, error)

	// InsertPoints writes points and their group memberships idempotently:
	// rows whose id already exists are left untouched. Returns the number of
	// newly inserted points.
	InsertPoints(ctx context.Context, pts []inspection.Point) (int64, error)

	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Driver string // DriverSQLite (default when empty) or DriverPostgres
	DSN    string // file path (or :memory:) for sqlite, connection string for postgres
}

// Open constructs the backend named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		return OpenSQLite(cfg.DSN)
	case DriverPostgres:
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, NewStoreError("open", fmt.Errorf("unknown driver %q", cfg.Driver))
	}
}

// StoreError reports a failure of the backing database - opening it,
// reaching it, or executing a statement against it.
type StoreError struct {
	Op  string // what the store was doing, e.g. "query points"
	Err error
}

// NewStoreError wraps err as a StoreError for operation op.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is (or wraps) a *StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
