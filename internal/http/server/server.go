// Package server assembles the HTTP router.
//
// Route table:
//
//	GET    /healthcheck            liveness and database ping
//	GET    /metrics                Prometheus metrics
//	GET    /uploads/*              stored images
//	*      /api/v1/students/...    student CRUD
//	*      /api/v1/assets/...      asset CRUD
//	GET    /api/v1/enums           allowed values of enumerated fields
//	GET    /*                      single-page frontend
package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aanand-mishra/campus-api/internal/http/handlers/asset"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/health"
	"github.com/aanand-mishra/campus-api/internal/http/handlers/student"
	"github.com/aanand-mishra/campus-api/internal/http/middleware"
	"github.com/aanand-mishra/campus-api/internal/metrics"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/upload"
	"github.com/aanand-mishra/campus-api/internal/utils/response"
	"github.com/aanand-mishra/campus-api/internal/web"
)

// Deps are the collaborators the handlers need.
type Deps struct {
	Env     string
	Log     *slog.Logger
	Store   storage.Storage
	Uploads *upload.Store
	Metrics *metrics.Metrics

	// Started is the process start time reported as uptime.
	Started time.Time

	// Detail adds error text to 500 responses.
	Detail bool
}

// New returns the application's root handler.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(d.Log))
	r.Use(d.Metrics.Middleware)
	r.Use(middleware.Recoverer(d.Log, d.Detail))
	r.Use(middleware.SecureHeaders)

	r.Get("/healthcheck", health.New(d.Env, d.Started, d.Store, d.Log))
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	r.Method(http.MethodGet, "/uploads/*", d.Uploads.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "Authorization", "X-Request-Id"},
			MaxAge:         600,
		}))

		r.Route("/v1/students", student.New(d.Store.Students(), d.Uploads, d.Log, d.Detail).Routes)
		r.Route("/v1/assets", asset.New(d.Store.Assets(), d.Uploads, d.Log, d.Detail).Routes)
		r.Get("/v1/enums", enums)

		r.NotFound(apiNotFound)
		r.MethodNotAllowed(methodNotAllowed)
	})

	spa := web.Handler()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			apiNotFound(w, r)
			return
		}
		spa.ServeHTTP(w, r)
	})
	r.MethodNotAllowed(methodNotAllowed)

	return r
}

func enums(w http.ResponseWriter, _ *http.Request) {
	response.WriteJSON(w, http.StatusOK, response.OK(types.Enums))
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusNotFound,
		response.Fail("Route "+r.Method+" "+strings.TrimSuffix(r.URL.Path, "/")+" not found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusMethodNotAllowed, response.Fail("Method "+r.Method+" not allowed"))
}
