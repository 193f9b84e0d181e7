// Package http provides the API server, its middleware and the metrics server.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	campaignHTTP "github.com/allisson/outreach/internal/campaign/http"
	"github.com/allisson/outreach/internal/config"
	dailymetricHTTP "github.com/allisson/outreach/internal/dailymetric/http"
	leadHTTP "github.com/allisson/outreach/internal/lead/http"
	"github.com/allisson/outreach/internal/metrics"
	replyHTTP "github.com/allisson/outreach/internal/reply/http"
	sendingHTTP "github.com/allisson/outreach/internal/sending/http"
)

// readinessTimeout bounds the database ping of /ready.
const readinessTimeout = 2 * time.Second

// Server is the outreach API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the API handlers mounted under /v1.
type Handlers struct {
	Lead        *leadHTTP.LeadHandler
	Campaign    *campaignHTTP.CampaignHandler
	Send        *sendingHTTP.SendHandler
	Reply       *replyHTTP.ReplyHandler
	DailyMetric *dailymetricHTTP.DailyMetricHandler
}

// NewServer creates a new API server. The router is built by SetupRouter.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with middleware, health checks and the /v1 API.
// The rate limiter cleanup loop runs until ctx is done.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	if cors := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); cors != nil {
		router.Use(cors)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	leads := v1.Group("/leads")
	{
		leads.POST("", handlers.Lead.IngestHandler)
		leads.GET("", handlers.Lead.ListHandler)
		leads.GET("/:id", handlers.Lead.GetHandler)
		leads.PUT("/:id/enrichment", handlers.Lead.EnrichmentHandler)
		leads.PUT("/:id/draft", handlers.Lead.DraftHandler)
		leads.POST("/:id/stop", handlers.Lead.StopHandler)
		leads.GET("/:id/logs", handlers.Lead.LogsHandler)
		leads.POST("/:id/approve", handlers.Send.ApproveHandler)
		leads.POST("/:id/replies", handlers.Reply.CreateHandler)
	}

	v1.POST("/approvals/batch", handlers.Send.BatchApproveHandler)

	campaigns := v1.Group("/campaigns")
	{
		campaigns.POST("", handlers.Campaign.CreateHandler)
		campaigns.GET("", handlers.Campaign.ListHandler)
		campaigns.GET("/:id", handlers.Campaign.GetHandler)
		campaigns.POST("/:id/pause", handlers.Campaign.PauseHandler)
		campaigns.POST("/:id/resume", handlers.Campaign.ResumeHandler)
	}

	dailyMetrics := v1.Group("/metrics")
	{
		dailyMetrics.GET("/today", handlers.DailyMetric.TodayHandler)
		dailyMetrics.GET("/days/:date", handlers.DailyMetric.GetHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
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

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	database := "ok"
	if s.db == nil {
		database = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			database = "error"
		}
	}

	if database != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": database},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": database},
	})
}
