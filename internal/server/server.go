package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kartik7022/FlowEngine/internal/config"
	"github.com/kartik7022/FlowEngine/internal/handlers"
	"github.com/kartik7022/FlowEngine/internal/logger"
	"github.com/kartik7022/FlowEngine/internal/middleware"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	logger          *logger.Logger
	router          *mux.Router
	httpServer      *http.Server
	registryHandler *handlers.RegistryAPIHandler
	healthHandler   *handlers.HealthHandler
}

// NewServer creates a new HTTP server
func NewServer(
	config *config.Config,
	logger *logger.Logger,
	registryHandler *handlers.RegistryAPIHandler,
	healthHandler *handlers.HealthHandler,
) *Server {
	router := mux.NewRouter()

	server := &Server{
		config:          config,
		logger:          logger,
		router:          router,
		registryHandler: registryHandler,
		healthHandler:   healthHandler,
	}

	server.setupRoutes()
	server.setupHTTPServer()

	return server
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Service banner and health endpoints (not tenant-scoped)
	s.router.HandleFunc("/", s.healthHandler.HandleRoot).Methods("GET")
	s.router.HandleFunc("/health", s.healthHandler.HandleHealthCheck).Methods("GET")

	// Metrics endpoint for monitoring systems
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Registry API routes
	s.registryHandler.RegisterRoutes(s.router)

	s.router.Use(middleware.CompressionMiddleware)
	s.router.Use(s.loggingMiddleware)
}

// setupHTTPServer configures the HTTP server
func (s *Server) setupHTTPServer() {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.config.Server.IdleTimeout) * time.Second,
	}
}

// Router returns the configured router
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start starts the HTTP server, blocking until shutdown
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("port", s.config.Server.Port).Info("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.WithError(err).Error("HTTP server error")
		return err
	}

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	s.logger.Info("Shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Middleware

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		s.logger.WithFields(map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapped.statusCode,
			"duration_ms": duration.Milliseconds(),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
