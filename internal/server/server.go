// Package server provides the HTTP API for Parsume.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/campushire/parsume/internal/config"
	"github.com/campushire/parsume/internal/ingest"
	"github.com/campushire/parsume/internal/mapper"
	"github.com/campushire/parsume/internal/metrics"
	"github.com/campushire/parsume/internal/resumeindex"
	"github.com/campushire/parsume/internal/storage"
	"github.com/campushire/parsume/internal/uploads"
)

// maxUploadBytes caps resume uploads at 16 MiB.
const maxUploadBytes = 16 << 20

// Server is the HTTP server for the Parsume API.
type Server struct {
	ingest  *ingest.Service
	mapper  *mapper.Mapper
	storage storage.Storage
	index   *resumeindex.Index
	uploads *uploads.Store
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	svc *ingest.Service,
	m *mapper.Mapper,
	store storage.Storage,
	index *resumeindex.Index,
	up *uploads.Store,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		ingest:  svc,
		mapper:  m,
		storage: store,
		index:   index,
		uploads: up,
		config:  cfg,
		logger:  logger,
	}
}

// Router builds the chi router with all API routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(metrics.Middleware())

	r.Post("/api/v1/students/{id}/resume", s.handleUploadResume)
	r.Delete("/api/v1/students/{id}/resume", s.handleDeleteResume)
	r.Get("/api/v1/students/{id}/profile", s.handleGetProfile)
	r.Put("/api/v1/students/{id}/profile", s.handleSaveProfile)
	r.Get("/api/v1/resumes/search", s.handleSearch)
	r.Get("/api/v1/profiles/export", s.handleExport)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
