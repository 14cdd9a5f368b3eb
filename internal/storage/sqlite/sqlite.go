// Package sqlite provides a SQLite-backed store using Go's standard
// database/sql package.
//
// SQLite stores everything in a single file on disk. There is no network,
// no separate server process, and no installation beyond the driver, which
// makes it the engine of choice for local development and tests.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage/sqldb"
)

// New opens the SQLite database at cfg.Path, creating its directory when
// needed. now is the clock used for record timestamps; nil means time.Now.
func New(cfg config.Database, now func() time.Time) (*sqldb.Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create directory: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet, it only validates the
	// driver name and the data source name.
	db, err := sql.Open("sqlite3", "file:"+cfg.Path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite serialises writers anyway; one connection avoids
	// "database is locked" between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	return sqldb.New(db, Dialect{}, now), nil
}

// Dialect is the SQLite sqldb.Dialect.
type Dialect struct{}

func (Dialect) Name() string { return "sqlite" }

// Placeholder uses numbered parameters so one argument can appear several
// times in a statement.
func (Dialect) Placeholder(n int) string { return fmt.Sprintf("?%d", n) }

// CaseInsensitiveLike is plain LIKE: SQLite's LIKE already ignores ASCII case.
func (Dialect) CaseInsensitiveLike() string { return "LIKE" }

func (Dialect) Types() sqldb.ColumnTypes {
	return sqldb.ColumnTypes{
		ID:        "INTEGER PRIMARY KEY AUTOINCREMENT",
		Timestamp: "TIMESTAMP",
		Date:      "DATE",
		Money:     "REAL",
	}
}

func (Dialect) HasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pragma_table_info(?1) WHERE name = ?2", table, column,
	).Scan(&n)
	return n > 0, err
}

// UniqueViolation matches SQLITE_CONSTRAINT_UNIQUE and reads the column
// from the message, which has the form
// "UNIQUE constraint failed: <table>.<column>".
func (Dialect) UniqueViolation(err error) (string, bool) {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return "", false
	}
	_, cols, _ := strings.Cut(sqliteErr.Error(), ": ")
	// composite keys list several columns; report the first one
	first, _, _ := strings.Cut(cols, ",")
	_, col, _ := strings.Cut(strings.TrimSpace(first), ".")
	return col, true
}

func (Dialect) InvalidValue(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck
}
