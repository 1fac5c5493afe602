// Package httpapi assembles the public router: directory endpoints plus the
// operational surface (health, metrics).
package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"staffdir/internal/directory/handler"
	"staffdir/pkg/platform/httputil"
	"staffdir/pkg/platform/middleware/requestmeta"
)

// HealthChecker reports readiness of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthFunc adapts a function to HealthChecker.
type HealthFunc func(ctx context.Context) error

func (f HealthFunc) Health(ctx context.Context) error { return f(ctx) }

// NewRouter mounts the directory handler with the standard middleware chain
// and the operational endpoints. Checkers are probed by /healthz; a nil map
// entry is skipped.
func NewRouter(h *handler.Handler, checkers map[string]HealthChecker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestmeta.Annotate)
	r.Use(middleware.Recoverer)

	h.Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthHandler(checkers))

	return r
}

func healthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		report := make(map[string]string, len(checkers))
		for name, checker := range checkers {
			if checker == nil {
				continue
			}
			if err := checker.Health(r.Context()); err != nil {
				report[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "ok"
		}
		httputil.WriteJSON(w, status, report)
	}
}
