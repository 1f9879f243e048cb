// Package api hosts the rule cascades behind an HTTP surface. Every
// endpoint is stateless: one request carries one clinical snapshot, one
// response carries one structured verdict.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/prostate-cdss-server/internal/config"
	"github.com/prostate-cdss-server/internal/eligibility"
	"github.com/prostate-cdss-server/internal/middleware"
	"github.com/prostate-cdss-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	configManager *config.Manager
	logger        *logrus.Logger
	classifier    *service.Classifier
	eligibility   *eligibility.Engine
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(configManager *config.Manager, logger *logrus.Logger) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger())
	router.Use(corsMiddleware())
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	}

	server := &Server{
		configManager: configManager,
		logger:        logger,
		classifier:    service.NewClassifier(logger),
		eligibility:   eligibility.NewEngine(logger),
		router:        router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Router exposes the configured gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/risk/nccn", s.handleNCCNRisk)
		v1.POST("/risk/eau", s.handleEAURisk)
		v1.POST("/staging/tnm", s.handleTNMStaging)
		v1.POST("/score/capra", s.handleCAPRA)
		v1.POST("/score/capra-s", s.handleCAPRAS)
		v1.POST("/bcr/risk", s.handleBCRRisk)
		v1.POST("/psadt", s.handlePSADT)

		v1.POST("/nomogram/briganti-2017", s.handleBriganti2017)
		v1.POST("/nomogram/briganti-2012", s.handleBriganti2012)
		v1.POST("/nomogram/roach", s.handleRoach)
		v1.POST("/nomogram/yale", s.handleYale)
		v1.POST("/nomogram/mskcc", s.handleMSKCC)

		v1.POST("/salvage/pelvic-nodes", s.handlePelvicNodes)
		v1.POST("/salvage/adt-duration", s.handleADTDuration)
		v1.POST("/salvage/spport", s.handleSPPORT)

		v1.POST("/eligibility/abiraterone", s.handleAbiraterone)
		v1.POST("/eligibility/b56", s.handleB56)
	}
}

// handleHealth handles health check requests
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"version":   "1.0.0",
	})
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
