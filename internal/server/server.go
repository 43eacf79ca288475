package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/knowledgehub/internal/assistant"
	"github.com/ziadkadry99/knowledgehub/internal/db"
	"github.com/ziadkadry99/knowledgehub/internal/export"
	"github.com/ziadkadry99/knowledgehub/internal/llm"
	"github.com/ziadkadry99/knowledgehub/internal/search"
	"github.com/ziadkadry99/knowledgehub/internal/store"
)

// Config holds server configuration.
type Config struct {
	Port           int
	RequestTimeout time.Duration // per-request budget, 0 means 60s
	AllowAll       bool          // allow all CORS origins (dev mode)
}

// Server is the knowledgehub HTTP server: document CRUD, search, export and
// the streaming assistant.
type Server struct {
	cfg        Config
	db         *db.DB
	store      *store.Store
	index      *search.Index
	client     *llm.Client
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all feature routes mounted. index may be nil
// (no embedding provider); client with a nil provider serves the degraded
// assistant paths.
func New(cfg Config, database *db.DB, client *llm.Client, index *search.Index) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		db:     database,
		store:  store.NewStore(database),
		index:  index,
		client: client,
	}

	router, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = router
	return s, nil
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() (chi.Router, error) {
	r := chi.NewRouter()

	timeout := s.cfg.RequestTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Feature routes.
	store.RegisterRoutes(r, s.store)
	search.RegisterRoutes(r, s.index, s.store)

	renderer, err := export.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("creating export renderer: %w", err)
	}
	export.RegisterRoutes(r, renderer, s.store)

	history := assistant.NewHistory(s.db)
	assistant.NewHandler(s.client, s.store, history).RegisterRoutes(r)

	return r, nil
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Store returns the document store.
func (s *Server) Store() *store.Store { return s.store }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("knowledgehub server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
