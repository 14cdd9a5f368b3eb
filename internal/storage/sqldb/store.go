package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Store implements storage.Storage. A single *sql.DB is a connection pool
// that is safe for concurrent use; every repository call borrows one
// connection for the duration of its statement.
type Store struct {
	db       *sql.DB
	dialect  Dialect
	students *Repository[types.Student]
	assets   *Repository[types.Asset]
}

var _ storage.Storage = (*Store)(nil)

// New wraps an open pool. now is the clock used for record timestamps;
// nil means time.Now.
func New(db *sql.DB, dialect Dialect, now func() time.Time) *Store {
	return &Store{
		db:       db,
		dialect:  dialect,
		students: NewRepository(db, dialect, StudentSchema, now),
		assets:   NewRepository(db, dialect, AssetSchema, now),
	}
}

func (s *Store) Students() storage.Repository[types.Student] { return s.students }

func (s *Store) Assets() storage.Repository[types.Asset] { return s.assets }

// Dialect returns the engine dialect of the store.
func (s *Store) Dialect() Dialect { return s.dialect }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Stats counts the rows of every resource table.
func (s *Store) Stats(ctx context.Context) ([]storage.TableStats, error) {
	tables := []string{StudentSchema.Table, AssetSchema.Table}
	stats := make([]storage.TableStats, 0, len(tables))
	for _, table := range tables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("stats: count %s: %w", table, err)
		}
		stats = append(stats, storage.TableStats{Table: table, Rows: n})
	}
	return stats, nil
}
