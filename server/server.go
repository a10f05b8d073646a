// Package server hosts the HTTP API: a Gin engine behind an h2c-capable
// net/http server, managed as a lifecycle component.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/cinevault/cinevault/component"
	"github.com/cinevault/cinevault/logger"
	"github.com/cinevault/cinevault/server/middleware"
)

// Server is the HTTP server component backed by Gin.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	log        *logger.Logger
	started    bool
}

// New creates a new Server. Routes are registered by the caller via
// GinEngine or RegisterRoutes before Start.
func New(cfg Config, log *logger.Logger) *Server {
	// Gin mode follows the global zerolog level.
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      h2c.NewHandler(engine, h2s),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		engine:     engine,
		config:     cfg,
		log:        log.WithComponent("server"),
	}
}

// GinEngine returns the underlying Gin engine for route registration.
func (s *Server) GinEngine() *gin.Engine {
	return s.engine
}

// ApplyMiddleware applies the standard middleware stack: recovery,
// request-ID, CORS, and request logging.
func (s *Server) ApplyMiddleware() {
	s.engine.Use(middleware.Recovery(s.log))
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.CORS(s.config.CORS))
	s.engine.Use(middleware.Metrics())
	s.engine.Use(middleware.RequestLogger(s.log))
}

// Name implements component.Component.
func (s *Server) Name() string { return "http" }

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	s.log.Info("Starting HTTP server", logger.Fields("addr", s.httpServer.Addr))

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("server failed to bind %s: %w", s.httpServer.Addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.started = true
	s.log.Info("HTTP server started", logger.Fields("addr", s.httpServer.Addr))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", logger.Fields(logger.FieldError, err.Error()))
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.started = false
	s.log.Info("HTTP server shut down successfully")
	return nil
}

// Health implements component.Component.
func (s *Server) Health(ctx context.Context) component.Health {
	status := component.StatusHealthy
	message := ""
	if !s.started {
		status = component.StatusUnhealthy
		message = "not started"
	}
	return component.Health{Name: s.Name(), Status: status, Message: message}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
