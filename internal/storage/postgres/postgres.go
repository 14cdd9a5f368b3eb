// Package postgres opens the PostgreSQL connection pool through pgx's
// database/sql driver and provides the PostgreSQL dialect.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage/sqldb"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeNumericOverflow = "22003"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// New opens the pool described by cfg, waits for the server to answer and
// returns a ready store. The caller owns the store and must Close it.
func New(ctx context.Context, cfg config.Database, log *slog.Logger) (*sqldb.Store, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// The database container often starts slower than the API.
	for attempt := 1; ; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			db.Close()
			return nil, fmt.Errorf("postgres.New: ping after %d attempts: %w", attempt, err)
		}
		log.Warn("database not reachable, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			db.Close()
			return nil, ctx.Err()
		case <-time.After(connectBackoff):
		}
	}

	return sqldb.New(db, Dialect{}, nil), nil
}

// Dialect is the PostgreSQL sqldb.Dialect.
type Dialect struct{}

func (Dialect) Name() string { return "postgres" }

func (Dialect) Placeholder(n int) string { return fmt.Sprintf("$%d", n) }

func (Dialect) CaseInsensitiveLike() string { return "ILIKE" }

func (Dialect) Types() sqldb.ColumnTypes {
	return sqldb.ColumnTypes{
		ID:        "BIGSERIAL PRIMARY KEY",
		Timestamp: "TIMESTAMPTZ",
		Date:      "DATE",
		Money:     "NUMERIC(10,2)",
	}
}

func (Dialect) HasColumn(ctx context.Context, db *sql.DB, table, column string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT FROM information_schema.columns
			WHERE table_schema = current_schema()
			AND table_name = $1
			AND column_name = $2
		)`, table, column).Scan(&exists)
	return exists, err
}

// UniqueViolation reads the column out of the constraint name, which the
// migrations always create as <table>_<column>_key.
func (Dialect) UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return "", false
	}
	col := strings.TrimSuffix(pgErr.ConstraintName, "_key")
	if pgErr.TableName != "" {
		col = strings.TrimPrefix(col, pgErr.TableName+"_")
	}
	return col, true
}

func (Dialect) InvalidValue(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == codeCheckViolation || pgErr.Code == codeNumericOverflow
}
