// Package web assembles the public HTTP surface from the domain servers.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"DealBoard/internal/auth"
	"DealBoard/internal/catalog"
	"DealBoard/internal/mailing"
	"DealBoard/internal/review"
	"DealBoard/internal/track"
	"DealBoard/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Deps struct {
	Catalog *catalog.Server
	Reviews *review.Server
	Mailing *mailing.Server
	Track   *track.Server
	Auth    *auth.Server

	// SubscribeLimiter throttles mailing-list signups per client IP.
	SubscribeLimiter *kit.IPRateLimiter
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

func NewHandler(deps Deps, httpDeps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", deps.Auth.Routes())

		api.Get("/cards", deps.Catalog.ListHandler())
		api.Get("/cards/category/{category}", deps.Catalog.ListByCategoryHandler())
		api.Get("/cards/{slug}", deps.Catalog.GetBySlugHandler())

		api.Get("/reviews/{slug}", deps.Reviews.GetBySlugHandler())

		if deps.SubscribeLimiter != nil {
			api.With(deps.SubscribeLimiter.Middleware).
				Post("/mailing-list", deps.Mailing.SubscribeHandler())
		} else {
			api.Post("/mailing-list", deps.Mailing.SubscribeHandler())
		}

		api.Post("/track", deps.Track.TrackHandler())

		api.Group(func(pr chi.Router) {
			pr.Use(auth.RequireToken(deps.Auth.JWT))
			pr.Post("/cards", deps.Catalog.CreateHandler())
			pr.Post("/sheets-webhook", deps.Catalog.WebhookHandler())
		})
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

// readyz checks the stores that may be backed by Postgres. The catalog is
// always ready: the seed set exists from construction.
func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Mailing.Store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed: mailing store", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}

		if err := deps.Auth.Store.Ping(ctx); err != nil {
			if log != nil {
				log.Warn("readyz failed: user store", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
