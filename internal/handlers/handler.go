package handlers

import (
	"time"

	"green_index/internal/logger"
	"green_index/internal/observability"
	"green_index/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	defaultStreamBuffer = 64
	defaultTotalsEvery  = 2 * time.Second
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services    *service.Service
	log         *logger.Logger
	metrics     *observability.Metrics
	wsBuffer    int
	totalsEvery time.Duration
	origins     []string
	upgrader    websocket.Upgrader
}

type Option func(*Handler)

// WithMetrics enables request metrics and the /metrics endpoint.
func WithMetrics(m *observability.Metrics) Option { return func(h *Handler) { h.metrics = m } }

// WithStream sets the per-connection WebSocket event buffer and how often
// campus totals are pushed.
func WithStream(buffer int, totalsEvery time.Duration) Option {
	return func(h *Handler) {
		if buffer > 0 {
			h.wsBuffer = buffer
		}
		if totalsEvery > 0 {
			h.totalsEvery = totalsEvery
		}
	}
}

// WithAllowedOrigins restricts which browser origins may open /ws.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) { h.origins = origins }
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:    services,
		log:         log,
		wsBuffer:    defaultStreamBuffer,
		totalsEvery: defaultTotalsEvery,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.upgrader = newUpgrader(h.origins)
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	if h.metrics != nil {
		router.Use(h.metrics.Middleware())
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", h.health)

	// Live stream of readings, alerts, dataset changes and campus totals.
	router.GET("/ws", h.wsConnect)

	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		h.registerIoTRoutes(api)
		h.registerSensorRoutes(api)
		h.registerSimulationRoutes(api)
		h.registerDatasetRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerIoTRoutes(api *gin.RouterGroup) {
	// Body example: {"deviceId":"ROOM1","timestamp":1700000000,"power":640,"occupancy":0}
	api.POST("/iot", h.postReading)
	api.GET("/iot", h.getIoTSnapshot)
}

func (h *Handler) registerSensorRoutes(api *gin.RouterGroup) {
	sensors := api.Group("/sensors")
	{
		sensors.GET("", h.listSensors)
		sensors.GET("/:id/history", h.sensorHistory)
		sensors.GET("/:id/readings", h.sensorReadings)
		sensors.GET("/:id/energy", h.sensorEnergy)
	}
	api.GET("/analytics/:category", h.categoryAnalytics)
	api.GET("/campus", h.campusTotals)
	api.GET("/alerts/wastage", h.wastageAlerts)
}

func (h *Handler) registerSimulationRoutes(api *gin.RouterGroup) {
	sim := api.Group("/simulation")
	{
		sim.GET("", h.simulationStatus)
		sim.POST("/start", h.startSimulation)
		sim.POST("/stop", h.stopSimulation)
	}
}

func (h *Handler) registerDatasetRoutes(api *gin.RouterGroup) {
	ds := api.Group("/datasets")
	{
		ds.POST("", h.uploadDataset)
		ds.DELETE("", h.clearDataset)
		ds.GET("/rows", h.datasetRows)
		ds.GET("/statistics", h.datasetStatistics)
		ds.GET("/leaderboard", h.leaderboard)
		ds.GET("/green-index", h.greenIndex)
		ds.GET("/category-scores", h.categoryScores)
		ds.GET("/export", h.exportDataset)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	api.GET("/logs", h.getLogs)
}
