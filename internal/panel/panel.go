// Package panel is the local operator surface of the dashboard: every request
// becomes an event on the engine loop and answers with the resulting View.
package panel

import (
	"context"
	"errors"
	"net/http"

	"cooling_dashboard/internal/dashboard"
	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/mode"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/remote"

	"github.com/gin-gonic/gin"
)

// Engine is the part of dashboard.Engine the panel drives.
type Engine interface {
	View() dashboard.View
	SelectMode(ctx context.Context, m models.Mode) error
	SetAC(ctx context.Context, on bool) error
	SetFan(ctx context.Context, on bool) error
	SetThreshold(ctx context.Context, t float64) error
	SetAdvisory(ctx context.Context, text string) error
	Commit(ctx context.Context, p dashboard.Patch) error
	Reconcile(ctx context.Context) error
	SetManual(ctx context.Context, in models.ManualSettings) error
	SetAutomation(ctx context.Context, in models.AutomationRule) error
}

// Handler wires HTTP requests to the engine.
type Handler struct {
	engine Engine
	log    *logger.Logger
}

func NewHandler(engine Engine, log *logger.Logger) *Handler {
	return &Handler{engine: engine, log: log}
}

const (
	statusOK           = "ok"
	errInvalidBodyPref = "invalid body: "
)

// InitRoutes builds the panel router.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.health)
	router.GET("/ws", h.wsConnect)

	api := router.Group("/api")
	{
		api.GET("/view", h.getView)
		api.POST("/commit", h.commit)
		api.POST("/reconcile", h.reconcile)

		controls := api.Group("/controls")
		{
			controls.POST("/mode", h.setMode)
			controls.POST("/ac", h.setAC)
			controls.POST("/fan", h.setFan)
			controls.POST("/threshold", h.setThreshold)
			controls.POST("/advisory", h.setAdvisory)
		}

		ac := api.Group("/ac")
		{
			ac.POST("/manual", h.setManual)
			ac.POST("/automation", h.setAutomation)
		}
	}
	return router
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.engine.View())
}

// respond maps an engine error onto a status code and always includes the view.
func (h *Handler) respond(c *gin.Context, logKey string, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"status": statusOK, "view": h.engine.View()})
		return
	}
	code := statusFor(err)
	if h.log != nil && code >= http.StatusInternalServerError {
		h.log.Warnw(logKey, "err", err)
	}
	c.JSON(code, gin.H{"status": remote.StatusFailed, "error": err.Error(), "view": h.engine.View()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrControlDisabled):
		return http.StatusConflict
	case errors.Is(err, mode.ErrUnknownMode), errors.Is(err, dashboard.ErrInvalidSetting):
		return http.StatusBadRequest
	case remote.IsNetwork(err), remote.IsDecode(err):
		return http.StatusBadGateway
	case errors.Is(err, dashboard.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func badBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
}
