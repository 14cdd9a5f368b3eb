// Package database opens the store selected by configuration.
package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage/postgres"
	"github.com/aanand-mishra/campus-api/internal/storage/sqldb"
	"github.com/aanand-mishra/campus-api/internal/storage/sqlite"
)

// Open connects to the configured engine. The caller must Close the store.
func Open(ctx context.Context, cfg config.Database, log *slog.Logger) (*sqldb.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg, log)
	case config.DriverSQLite:
		return sqlite.New(cfg, nil)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Target describes where Open connects, without credentials, for logs.
func Target(cfg config.Database) slog.Attr {
	if cfg.Driver == config.DriverSQLite {
		return slog.String("path", cfg.Path)
	}
	return slog.Group("postgres",
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("name", cfg.Name),
	)
}
