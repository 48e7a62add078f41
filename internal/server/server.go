// Package server provides the HTTP API for Cookable.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cookable/cookable/internal/config"
	"github.com/cookable/cookable/internal/keyword"
	"github.com/cookable/cookable/internal/recommend"
	"github.com/cookable/cookable/internal/store"
)

// Server is the HTTP server for the Cookable API. Recommendation requests
// read the engine's current model snapshot; Reload builds a fresh snapshot
// from the dataset and swaps it in atomically.
type Server struct {
	engine      *recommend.Engine
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
	recipeIndex *keyword.Index
	indexMu     sync.RWMutex
}

// NewServer creates a server with the given dependencies. recipeIndex may be
// nil; recipe search then responds 503 until a reload builds one.
func NewServer(engine *recommend.Engine, recipeIndex *keyword.Index, cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{
		engine:      engine,
		config:      cfg,
		logger:      logger,
		recipeIndex: recipeIndex,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Mount("/", s.routes())

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// routes builds the API router. Split out so handler tests can exercise the
// full routing table without binding a port.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/api/v1/recommend", s.handleRecommend)
	r.Get("/api/v1/recipes/search", s.handleRecipeSearch)
	r.Get("/api/v1/recipes/{name}", s.handleGetRecipe)
	r.Get("/api/v1/clusters", s.handleClusters)
	r.Post("/api/v1/reload", s.handleReload)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Reload rebuilds the model and recipe index from the configured dataset and
// swaps both in. On failure the previous snapshot keeps serving.
func (s *Server) Reload() error {
	recipes, err := store.Load(s.config.Storage.DatasetPath)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	model, err := recommend.Build(recipes, s.config.Clustering, &s.config.Scoring)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	index, err := keyword.NewIndex(model.Recipes())
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}

	s.engine.Swap(model)

	s.indexMu.Lock()
	old := s.recipeIndex
	s.recipeIndex = index
	s.indexMu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	s.logger.Info("model reloaded",
		zap.Int("recipes", len(model.Recipes())),
		zap.Int("vocabulary", len(model.Vocabulary())),
		zap.Int("clusters", model.NumClusters()),
	)
	return nil
}
