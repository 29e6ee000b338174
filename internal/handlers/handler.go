package handlers

import (
	"time"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	stream   time.Duration
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log, stream: defaultInterval}
}

// WithStreamInterval sets the telemetry stream check interval used when the
// client does not ask for one. Out-of-range values are ignored.
func (h *Handler) WithStreamInterval(d time.Duration) *Handler {
	if d > 0 && d <= maxInterval {
		h.stream = d
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger, cors)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAPIRoutes(router)

	// Telemetry push stream on the same port
	router.GET("/ws/telemetry", h.wsTelemetry)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.POST("/telemetry", h.postTelemetry)
		api.GET("/data", h.getData)
		api.GET("/datetime", h.getDatetime)
		api.GET("/commands", h.getCommands)

		h.registerActuatorRoutes(api)
		h.registerClimateRoutes(api)
		h.registerWeatherRoutes(api)
	}
}

func (h *Handler) registerActuatorRoutes(api *gin.RouterGroup) {
	actuator := api.Group("/actuator")
	{
		actuator.GET("/state", h.getActuatorState)
		// Body example: {"mode_request":"auto","ac":0,"fan":1,"temp_threshold":26}
		actuator.POST("/state", h.postActuatorState)
	}
}

func (h *Handler) registerClimateRoutes(api *gin.RouterGroup) {
	ac := api.Group("/ac")
	{
		ac.GET("/settings", h.getClimateSettings)
		ac.POST("/manual", h.postManual)
		ac.POST("/automation", h.postAutomation)
	}
}

func (h *Handler) registerWeatherRoutes(api *gin.RouterGroup) {
	weather := api.Group("/weather")
	{
		weather.GET("/current", h.getWeatherCurrent)
		weather.GET("/forecast", h.getWeatherForecast)
	}
}
