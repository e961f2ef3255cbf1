// Package server provides the HTTP server for the LightRAG MCP API.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vaebz/lightrag-mcp/internal/action"
	appconfig "github.com/vaebz/lightrag-mcp/internal/config"
	"github.com/vaebz/lightrag-mcp/internal/event"
	"github.com/vaebz/lightrag-mcp/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Addr        string
	EnableCORS  bool
	ReadTimeout time.Duration
	// WriteTimeout must stay zero for SSE connections to live indefinitely.
	WriteTimeout time.Duration

	// HeartbeatTicks is the number of queue-polling ticks between heartbeats.
	HeartbeatTicks int
	// TickInterval is the delay between queue polls on a streaming session.
	TickInterval time.Duration
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "0.0.0.0:9626",
		EnableCORS:     true,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   0,
		HeartbeatTicks: 30,
		TickInterval:   time.Second,
	}
}

// Server is the HTTP server. It owns no state of its own beyond the shared
// event queue and dispatcher handed to it at construction.
type Server struct {
	config     *Config
	appConfig  *appconfig.Config
	router     *chi.Mux
	httpSrv    *http.Server
	queue      *event.Queue
	dispatcher *action.Dispatcher

	// Closed on Shutdown so streaming sessions drain instead of holding the
	// process open.
	shutdownCh   chan struct{}
	shutdownOnce sync.Once
}

// New creates a new Server instance.
func New(cfg *Config, appCfg *appconfig.Config, queue *event.Queue, dispatcher *action.Dispatcher) *Server {
	s := &Server{
		config:     cfg,
		appConfig:  appCfg,
		router:     chi.NewRouter(),
		queue:      queue,
		dispatcher: dispatcher,
		shutdownCh: make(chan struct{}),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware for the server.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	if s.config.EnableCORS {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			MaxAge:         300,
		}))
	}
}

// requestLogger logs one structured line per completed request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logging.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("requestID", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	return s.httpSrv.ListenAndServe()
}

// Shutdown signals all streaming sessions to drain, then gracefully shuts
// down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		close(s.shutdownCh)
	})

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Router returns the Chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
