// Package sqldb implements storage.Storage on top of database/sql.
//
// All SQL is generated from two ingredients:
//
//   - a Schema per resource (table, columns, filters, how to scan a row), and
//   - a Dialect per engine (placeholders, column types, error codes).
//
// The postgres and sqlite packages provide the dialects and open the pools;
// this package owns every statement.
package sqldb

import (
	"context"
	"database/sql"

	"github.com/aanand-mishra/campus-api/internal/storage/query"
)

// ColumnTypes are the engine-specific SQL types used by the DDL.
type ColumnTypes struct {
	ID        string // auto-increment primary key, including "PRIMARY KEY"
	Timestamp string
	Date      string
	Money     string
}

// Dialect captures everything that differs between database engines.
type Dialect interface {
	query.Dialect

	// Name is the driver name, e.g. "postgres".
	Name() string

	Types() ColumnTypes

	// HasColumn reports whether table already has column.
	HasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error)

	// UniqueViolation inspects a driver error. When it is a unique
	// constraint violation it returns the offending column.
	UniqueViolation(err error) (column string, ok bool)

	// InvalidValue reports whether the database refused a value, such as a
	// CHECK constraint violation or a number out of the column's range.
	InvalidValue(err error) bool
}
