package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/domain/model"
)

// config holds internal HTTP server configuration
type config struct {
	addr        string
	texturesMap model.TexturesMap
	modelHosts  []string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithTexturesMap sets the textures map used to resolve references
func WithTexturesMap(m model.TexturesMap) Option {
	return func(c *config) {
		c.texturesMap = m
	}
}

// WithModelHosts restricts the hosts model URLs may point to. Every host is
// allowed when none is given.
func WithModelHosts(hosts ...string) Option {
	return func(c *config) {
		c.modelHosts = append(c.modelHosts, hosts...)
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	bundleUC interfaces.BundleUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:        "localhost:8080",
		texturesMap: model.TexturesMap{},
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", newHealthHandler(cfg.texturesMap))

	// Bundle API
	bundleHandler := NewBundleHandler(bundleUC, cfg.texturesMap, cfg.modelHosts...)
	router.Route("/api", func(r chi.Router) {
		r.Get("/bundle", bundleHandler.Bundle)
		r.Get("/inspect", bundleHandler.Inspect)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
