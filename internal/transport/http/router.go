// Package httptransport assembles the HTTP surface: middleware chain,
// domain routes, health and metrics endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	enquiryhandler "enquiries/internal/enquiry/handler"
	"enquiries/pkg/platform/httputil"
	"enquiries/pkg/platform/middleware/requestmeta"
)

// HealthChecker reports whether a backing resource is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthFunc adapts a function to HealthChecker.
type HealthFunc func(ctx context.Context) error

func (f HealthFunc) Health(ctx context.Context) error { return f(ctx) }

// NewRouter wires the middleware chain and all routes.
func NewRouter(enquiries *enquiryhandler.Handler, logger *slog.Logger, checks map[string]HealthChecker) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(requestmeta.Middleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", handleHealth(logger, checks))

	enquiries.Register(r)
	return r
}

// handleHealth pings each backing resource. Any failure flips the status to
// 503 with the failing components named.
func handleHealth(logger *slog.Logger, checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check.Health(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed",
					slog.String("component", name),
					slog.String("error", err.Error()))
				components[name] = "unhealthy"
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "ok"
		}
		httputil.WriteJSON(w, status, components)
	}
}
