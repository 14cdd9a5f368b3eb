package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/storage/query"
)

// Match selects how a filter compares its column.
type Match int

const (
	MatchEqual Match = iota
	MatchContains
)

// Filter maps one list query parameter to one column.
type Filter struct {
	Key    string
	Column string
	Match  Match
}

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Schema describes one resource table.
//
// Every SELECT and RETURNING list is "id, <Columns...>, created_at,
// updated_at", and Scan must read exactly that order.
type Schema[T any] struct {
	Table string

	// Columns are the writable columns, in the order Values returns them.
	Columns []string

	// Search columns are matched by the "search" filter.
	Search []string

	Filters []Filter

	Values func(record T) []any
	Scan   func(row RowScanner) (T, error)
}

func (s Schema[T]) selectList() string {
	return "id, " + strings.Join(s.Columns, ", ") + ", created_at, updated_at"
}

// Repository is the generic storage.Repository for one Schema.
type Repository[T any] struct {
	db      *sql.DB
	dialect Dialect
	schema  Schema[T]
	now     func() time.Time
}

// NewRepository returns a repository for schema. now sets created_at and
// updated_at; nil means time.Now.
func NewRepository[T any](db *sql.DB, dialect Dialect, schema Schema[T], now func() time.Time) *Repository[T] {
	if now == nil {
		now = time.Now
	}
	return &Repository[T]{db: db, dialect: dialect, schema: schema, now: now}
}

func (r *Repository[T]) placeholders(from, n int) string {
	ph := make([]string, n)
	for i := range ph {
		ph[i] = r.dialect.Placeholder(from + i)
	}
	return strings.Join(ph, ", ")
}

func (r *Repository[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T

	values := r.schema.Values(record)
	ts := r.now().UTC()
	args := append(values, ts, ts)

	stmt := fmt.Sprintf("INSERT INTO %s (%s, created_at, updated_at) VALUES (%s) RETURNING %s",
		r.schema.Table,
		strings.Join(r.schema.Columns, ", "),
		r.placeholders(1, len(args)),
		r.schema.selectList(),
	)

	created, err := r.schema.Scan(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return zero, fmt.Errorf("%s: create: %w", r.schema.Table, r.classify(err))
	}
	return created, nil
}

// ListQuery renders the SELECT for filters. Unknown filter keys are ignored.
func (r *Repository[T]) ListQuery(filters storage.Filters) (string, []any) {
	var b query.Builder
	b.Contains(filters["search"], r.schema.Search...)
	for _, f := range r.schema.Filters {
		switch f.Match {
		case MatchEqual:
			b.Eq(f.Column, filters[f.Key])
		case MatchContains:
			b.Contains(filters[f.Key], f.Column)
		}
	}

	where, args := b.Build(r.dialect, 0)
	stmt := "SELECT " + r.schema.selectList() + " FROM " + r.schema.Table + where +
		" ORDER BY created_at DESC, id DESC"
	return stmt, args
}

func (r *Repository[T]) List(ctx context.Context, filters storage.Filters) ([]T, error) {
	stmt, args := r.ListQuery(filters)

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", r.schema.Table, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		rec, err := r.schema.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: list: scan row: %w", r.schema.Table, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: list: rows iteration: %w", r.schema.Table, err)
	}
	return records, nil
}

func (r *Repository[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T

	stmt := "SELECT " + r.schema.selectList() + " FROM " + r.schema.Table +
		" WHERE id = " + r.dialect.Placeholder(1)

	rec, err := r.schema.Scan(r.db.QueryRowContext(ctx, stmt, id))
	if err != nil {
		return zero, fmt.Errorf("%s: get %d: %w", r.schema.Table, id, r.classify(err))
	}
	return rec, nil
}

func (r *Repository[T]) Update(ctx context.Context, id int64, record T) (T, error) {
	var zero T

	values := r.schema.Values(record)
	set := make([]string, 0, len(r.schema.Columns)+1)
	for i, col := range r.schema.Columns {
		set = append(set, col+" = "+r.dialect.Placeholder(i+1))
	}
	n := len(values)
	set = append(set, "updated_at = "+r.dialect.Placeholder(n+1))
	args := append(values, r.now().UTC(), id)

	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s RETURNING %s",
		r.schema.Table,
		strings.Join(set, ", "),
		r.dialect.Placeholder(n+2),
		r.schema.selectList(),
	)

	updated, err := r.schema.Scan(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return zero, fmt.Errorf("%s: update %d: %w", r.schema.Table, id, r.classify(err))
	}
	return updated, nil
}

func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	stmt := "DELETE FROM " + r.schema.Table + " WHERE id = " + r.dialect.Placeholder(1)

	res, err := r.db.ExecContext(ctx, stmt, id)
	if err != nil {
		return false, fmt.Errorf("%s: delete %d: %w", r.schema.Table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: delete %d: rows affected: %w", r.schema.Table, id, err)
	}
	return n > 0, nil
}

// classify turns driver errors into the storage sentinels.
func (r *Repository[T]) classify(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if col, ok := r.dialect.UniqueViolation(err); ok {
		return &storage.ConflictError{Field: col, Err: err}
	}
	if r.dialect.InvalidValue(err) {
		return fmt.Errorf("%w: %v", storage.ErrInvalid, err)
	}
	return err
}
