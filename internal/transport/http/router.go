// Package httptransport assembles the HTTP surface: public marketing
// endpoints, the authenticated product API, and operational routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"praxis/internal/platform/middleware"
	"praxis/internal/transport/http/shared"
)

const requestTimeout = 30 * time.Second

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports readiness of a backing dependency.
type HealthChecker func(ctx context.Context) error

// Deps carries everything the router mounts.
type Deps struct {
	Logger   *slog.Logger
	Sessions middleware.SessionValidator

	// Public routes, mounted without authentication.
	Subscribe Registrar

	// Authenticated product API.
	AccessKey   Registrar
	Onboarding  Registrar
	Foundations Registrar
	Progress    Registrar

	// Named dependency probes surfaced through /healthz.
	Health map[string]HealthChecker
}

// NewRouter wires middleware and routes. Every product route sits behind
// bearer auth; /api/subscribe stays public because marketing pages embed it.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.ContentTypeJSON)

	deps.Subscribe.Register(r)
	r.Get("/healthz", healthHandler(deps.Health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Sessions, deps.Logger))
		deps.AccessKey.Register(r)
		deps.Onboarding.Register(r)
		deps.Foundations.Register(r)
		deps.Progress.Register(r)
	})

	return r
}

func healthHandler(checks map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		result := make(map[string]string, len(checks)+1)
		result["status"] = "ok"
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status = http.StatusServiceUnavailable
				result[name] = err.Error()
				result["status"] = "degraded"
				continue
			}
			result[name] = "ok"
		}
		shared.WriteJSON(w, status, result)
	}
}
