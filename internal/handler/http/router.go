package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vidriera/showcase/internal/service"
	"github.com/vidriera/showcase/pkg/health"
	"github.com/vidriera/showcase/pkg/middleware"
)

// RouterConfig carries the request-surface settings the router needs.
type RouterConfig struct {
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	Environment        string
}

// NewRouter creates a chi router with all showcase service routes registered.
func NewRouter(
	showcaseService *service.ShowcaseService,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("showcase"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	showcaseHandler := NewShowcaseHandler(showcaseService, cfg.MaxUploadBytes, logger)

	r.Route("/api/v1/rulesets", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/", showcaseHandler.CreateRuleSet)
		r.Get("/", showcaseHandler.ListRuleSets)
		r.Get("/{id}", showcaseHandler.GetRuleSet)
		r.Put("/{id}", showcaseHandler.UpdateRuleSet)
		r.Delete("/{id}", showcaseHandler.DeleteRuleSet)
	})

	r.Route("/api/v1/arrangements", func(r chi.Router) {
		// Feed uploads arrive as multipart/form-data, so no JSON
		// content-type enforcement on this subtree.
		r.Post("/", showcaseHandler.BuildArrangement)
		r.Get("/latest", showcaseHandler.LatestArrangement)
	})

	return r
}
