// Package http provides the HTTP server, router setup and shared middleware.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// StoragePinger checks connectivity to the card store for readiness probes.
// *sql.DB satisfies it directly; the MongoDB client is adapted in the DI
// container.
type StoragePinger interface {
	PingContext(ctx context.Context) error
}

// ValidatorHandlers exposes the terminal-facing endpoints.
type ValidatorHandlers interface {
	ScanHandler(c *gin.Context)
	PingHandler(c *gin.Context)
}

// CardHandlers exposes the administrative card management endpoints.
type CardHandlers interface {
	ListHandler(c *gin.Context)
	CreateHandler(c *gin.Context)
	GetHandler(c *gin.Context)
	DeleteHandler(c *gin.Context)
	TopUpHandler(c *gin.Context)
	StatusHandler(c *gin.Context)
	ExpirationHandler(c *gin.Context)
	NameHandler(c *gin.Context)
}

// RouterConfig carries the handlers and middleware the router mounts.
type RouterConfig struct {
	ValidatorHandlers   ValidatorHandlers
	CardHandlers        CardHandlers
	AuthMiddleware      gin.HandlerFunc
	RateLimitMiddleware gin.HandlerFunc
	MetricsMiddleware   gin.HandlerFunc
	CORSEnabled         bool
	CORSAllowOrigins    string
}

// Server represents the main HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     StoragePinger
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is empty until SetupRouter
// is called.
func NewServer(db StoragePinger, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		db:     db,
		logger: logger,
	}
}

// SetupRouter builds the Gin router and registers all routes.
//
// Health and readiness are unauthenticated; everything under /validator
// requires a terminal bearer token, and the scan endpoint additionally goes
// through per-terminal rate limiting.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MetricsMiddleware != nil {
		router.Use(cfg.MetricsMiddleware)
	}
	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	authenticated := router.Group("/validator")
	if cfg.AuthMiddleware != nil {
		authenticated.Use(cfg.AuthMiddleware)
	}

	if cfg.ValidatorHandlers != nil {
		scan := authenticated.Group("")
		if cfg.RateLimitMiddleware != nil {
			scan.Use(cfg.RateLimitMiddleware)
		}
		scan.POST("/scanCardInfo", cfg.ValidatorHandlers.ScanHandler)
		authenticated.POST("/pingStatus", cfg.ValidatorHandlers.PingHandler)
	}

	if cfg.CardHandlers != nil {
		cards := authenticated.Group("/cards")
		cards.GET("", cfg.CardHandlers.ListHandler)
		cards.POST("", cfg.CardHandlers.CreateHandler)
		cards.GET("/:uid", cfg.CardHandlers.GetHandler)
		cards.DELETE("/:uid", cfg.CardHandlers.DeleteHandler)
		cards.POST("/:uid/topup", cfg.CardHandlers.TopUpHandler)
		cards.POST("/:uid/status", cfg.CardHandlers.StatusHandler)
		cards.POST("/:uid/expiration", cfg.CardHandlers.ExpirationHandler)
		cards.POST("/:uid/name", cfg.CardHandlers.NameHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the card store is reachable. Terminals
// poll this before accepting riders.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}
	status := "ready"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
		components["database"] = "error"
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"status":     status,
		"components": components,
	})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
