// Package server defines the core Server struct that composes the app's
// main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - http.Server (the routing collaborator supplies the handler)
//
// It provides constructors and start/shutdown logic to run the application
// cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/starwars-blog/internal/config"
	"github.com/deppfellow/starwars-blog/internal/database"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/starwars-blog/internal/logger"
)

// Server is the application container holding shared resources. It is not
// the HTTP server itself; that is configured through SetupHTTPServer.
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper, the transactional backend every
	// repository delegates to.
	DB *database.Database

	httpServer *http.Server
}

// New constructs a Server and initializes the database pool. It does not
// start the HTTP server; that happens in SetupHTTPServer + Start.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// SetupHTTPServer configures the internal net/http server around the handler
// the routing collaborator provides.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// Config stores timeout values in seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. It blocks until the server stops or errors,
// and requires SetupHTTPServer to have been called first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies: inflight
// requests get until the context deadline, then the pool closes and pending
// telemetry is flushed.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
	}

	if s.LoggerService != nil {
		s.LoggerService.Shutdown(10 * time.Second)
	}

	s.Logger.Info().Msg("server shut down")
	return nil
}
