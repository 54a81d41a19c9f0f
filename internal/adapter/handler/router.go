package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-actions/internal/adapter/dto/common"
	"github.com/johnquangdev/meeting-actions/pkg/config"
)

const healthCheckTimeout = 2 * time.Second

// PingFunc reports whether a dependency is reachable
type PingFunc func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg        *config.Config
	jobHandler *Job
	dbPing     PingFunc
	logger     *zap.Logger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jobHandler *Job, dbPing PingFunc, logger *zap.Logger) *Router {
	return &Router{
		cfg:        cfg,
		jobHandler: jobHandler,
		dbPing:     dbPing,
		logger:     logger,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API docs are not exposed in production
	if !rt.cfg.IsProduction() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API v1 group
	v1 := e.Group("/v1")
	rt.setupJobRoutes(v1)
}

// setupJobRoutes configures job routes
func (rt *Router) setupJobRoutes(g *echo.Group) {
	jobGroup := g.Group("/jobs")

	jobGroup.POST("", rt.jobHandler.CreateJob)
	jobGroup.GET("/:jobId", rt.jobHandler.GetJob)
	jobGroup.GET("/:jobId/result", rt.jobHandler.GetJobResult)

	if !rt.cfg.IsProduction() {
		jobGroup.POST("/:jobId/_dev/complete", rt.jobHandler.DevComplete)
	}
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	resp := common.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
		Database:    "ok",
	}

	if rt.dbPing != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		if err := rt.dbPing(ctx); err != nil {
			if rt.logger != nil {
				rt.logger.Warn("health check failed", zap.Error(err))
			}
			resp.Status = "unavailable"
			resp.Database = "unreachable"
			return c.JSON(http.StatusServiceUnavailable, resp)
		}
	}

	return c.JSON(http.StatusOK, resp)
}
