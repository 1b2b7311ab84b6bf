// Package server exposes the batch calculation over HTTP. It is a thin
// adapter: multipart upload in, JSON with base64-encoded workbooks out, no
// calculation logic of its own.
package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"finops/lease-recon/internal/config"
	"finops/lease-recon/internal/logging"
)

var log = logging.GetLogger()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// NewRouter creates the router with all routes configured.
func NewRouter(cfg *config.Config) *chi.Mux {
	h := NewHandler(cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)
		r.Get("/template", h.Template)
	})
	r.Get("/healthz", h.Health)

	return r
}
