// Package storage defines the contract between the HTTP layer and the
// database. Handlers depend only on these interfaces, so the backing engine
// (PostgreSQL or SQLite) is picked once in main.go and nowhere else.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/aanand-mishra/campus-api/internal/types"
)

// Sentinel errors returned (wrapped) by every Repository implementation.
// Callers match them with errors.Is.
var (
	// ErrNotFound means no row has the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a unique constraint rejected the write.
	ErrConflict = errors.New("unique constraint violation")

	// ErrInvalid means a CHECK constraint rejected the write.
	ErrInvalid = errors.New("check constraint violation")
)

// ConflictError names the unique field that rejected a write.
// errors.Is(err, ErrConflict) reports true for it.
type ConflictError struct {
	Field string
	Err   error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %v", e.Field, e.Err)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

func (e *ConflictError) Unwrap() error { return e.Err }

// Filters are the raw list query parameters, keyed by filter name
// ("search", "status", ...). Empty values impose no constraint.
type Filters map[string]string

// Repository is the data-access contract for one resource type.
type Repository[T any] interface {
	// Create inserts record and returns it as stored, with its new id and
	// timestamps.
	Create(ctx context.Context, record T) (T, error)

	// List returns the records matching filters, newest first.
	// It returns an empty slice (not nil) when nothing matches.
	List(ctx context.Context, filters Filters) ([]T, error)

	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (T, error)

	// Update replaces every writable field of the record with the given id
	// and returns the stored result, or ErrNotFound.
	Update(ctx context.Context, id int64, record T) (T, error)

	// Delete removes the record and reports whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
}

// TableStats is one line of the migration status report.
type TableStats struct {
	Table string
	Rows  int64
}

// Storage is the whole database as seen by the application.
type Storage interface {
	Students() Repository[types.Student]
	Assets() Repository[types.Asset]

	// Migrate creates missing tables, columns and indexes. It is idempotent.
	Migrate(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}
