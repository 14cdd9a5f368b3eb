// Package health serves GET /healthcheck.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/campus-api/internal/utils/response"
)

// Pinger is the part of the store the check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status is the healthcheck body.
type Status struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
}

// New reports liveness. The database is pinged with a short timeout; a
// failed ping answers 503 so load balancers stop routing to the instance.
func New(env string, started time.Time, db Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		body := Status{
			Status:      "OK",
			Timestamp:   now.UTC().Format(time.RFC3339Nano),
			Uptime:      now.Sub(started).Seconds(),
			Environment: env,
			Database:    "up",
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn("healthcheck ping failed", slog.String("error", err.Error()))
			body.Status, body.Database = "ERROR", "down"
			response.WriteJSON(w, http.StatusServiceUnavailable, body)
			return
		}
		response.WriteJSON(w, http.StatusOK, body)
	}
}
