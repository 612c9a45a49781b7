// Package api exposes the assistant and the catalog over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"shop-assistant/internal/assistant"
	"shop-assistant/internal/catalog"
	"shop-assistant/internal/common/logger"
	"shop-assistant/pkg/registry"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Deps are the collaborators the router needs. Checks are run by /ready.
type Deps struct {
	Engine         *assistant.Engine
	Catalog        catalog.Store
	Registry       *registry.ActivityRegistry
	Logger         logger.Logger
	RequestTimeout time.Duration
	Checks         map[string]ReadinessCheck
}

// NewRouter wires every route onto a chi router.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logger.NewNoOpLogger()
	}
	if d.Registry == nil {
		d.Registry = registry.Default()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 15 * time.Second
	}

	chat := &chatHandler{
		engine:  d.Engine,
		catalog: d.Catalog,
		schema:  d.Registry.RequestSchema(registry.RequestChatMessage),
		logger:  d.Logger.WithFields(map[string]interface{}{"handler": "chat"}),
		newID:   newSessionID,
	}
	products := &productHandler{
		catalog: d.Catalog,
		logger:  d.Logger.WithFields(map[string]interface{}{"handler": "products"}),
	}
	health := &healthHandler{checks: d.Checks}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(d.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", health.Health)
	r.Get("/ready", health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(d.RequestTimeout))

		r.Post("/chat/message", chat.Message)

		r.Route("/products", func(r chi.Router) {
			r.Get("/search", products.Search)
			r.Get("/categories", products.Categories)
			r.Get("/brands", products.Brands)
			r.Get("/featured", products.Featured)
			r.Get("/trending", products.Trending)
			r.Get("/{id}", products.Get)
		})
	})

	return r
}

// requestLogger logs one line per request through the structured logger.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			log.Info("http request", map[string]interface{}{
				"method":    r.Method,
				"path":      r.URL.Path,
				"status":    ww.Status(),
				"bytes":     ww.BytesWritten(),
				"duration":  time.Since(start).String(),
				"requestId": chimiddleware.GetReqID(r.Context()),
			})
		})
	}
}
