// campus-migrate manages the database schema outside the server.
//
// Usage:
//
//	campus-migrate [--config=path] up       create missing tables, columns and indexes
//	campus-migrate [--config=path] upgrade  add the student profile columns to an old table
//	campus-migrate [--config=path] status   print each table with its row count
//
// The database is chosen by the same configuration the server reads.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/logger"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/storage/database"
)

// migrator is the part of the store the commands use.
type migrator interface {
	Migrate(ctx context.Context) error
	Upgrade(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) ([]storage.TableStats, error)
}

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flag.NArg() != 1 {
		usage(os.Stderr)
		os.Exit(2)
	}

	store, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		color.Red("cannot open database: %v", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := run(ctx, flag.Arg(0), store, os.Stdout); err != nil {
		color.Red("%v", err)
		store.Close()
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: campus-migrate [--config=path] up|upgrade|status")
}

func run(ctx context.Context, cmd string, m migrator, out io.Writer) error {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	switch cmd {
	case "up":
		if err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		green.Fprintln(out, "Database migrated successfully")
		return nil

	case "upgrade":
		added, err := m.Upgrade(ctx)
		if err != nil {
			return fmt.Errorf("upgrade failed: %w", err)
		}
		if len(added) == 0 {
			yellow.Fprintln(out, "Students table is already up to date")
			return nil
		}
		for _, col := range added {
			green.Fprintf(out, "Added column students.%s\n", col)
		}
		return nil

	case "status":
		stats, err := m.Stats(ctx)
		if err != nil {
			return fmt.Errorf("status failed: %w", err)
		}
		color.New(color.FgCyan).Fprintln(out, "Tables")
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Table", "Rows"})
		for _, s := range stats {
			table.Append([]string{s.Table, strconv.FormatInt(s.Rows, 10)})
		}
		table.Render()
		return nil

	default:
		usage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
