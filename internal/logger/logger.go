// Package logger builds the process-wide slog.Logger.
package logger

import (
	"io"
	"log/slog"

	"github.com/aanand-mishra/campus-api/internal/config"
)

// New returns a logger configured for env.
//
// Development: human-readable text at DEBUG level.
// Staging: JSON at DEBUG level.
// Production: JSON at INFO level, for log aggregators.
func New(env string, w io.Writer) *slog.Logger {
	switch env {
	case config.EnvProd:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case config.EnvStaging:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
