package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"regdesk/internal/platform/metrics"
	"regdesk/internal/platform/middleware"
	"regdesk/internal/registration/handler"
)

// NewRouter wires middleware and all endpoints. CORS is restricted to the
// configured client origin; an empty origin means same-origin or local use
// and mounts no CORS layer at all.
func NewRouter(h *handler.Handler, log *slog.Logger, m *metrics.Metrics, clientOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(m))

	if clientOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{clientOrigin},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Handle("/metrics", promhttp.Handler())
	h.Register(r)
	return r
}
