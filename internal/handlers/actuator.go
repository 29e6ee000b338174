package handlers

import (
	"errors"
	"net/http"

	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errGetActuator     = "failed to load actuator state"
	errSaveActuator    = "failed to save actuator state"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError answers 400 with the validation message for rejected input,
// and 500 with userMsg otherwise.
func (h *Handler) serviceError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if errors.Is(err, service.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err, kv...)
}

// Request DTO for replacing the actuator state. Absent threshold keeps the
// device default.
type actuatorStateRequest struct {
	ModeRequest   string        `json:"mode_request"`
	AC            models.Switch `json:"ac"`
	Fan           models.Switch `json:"fan"`
	TempThreshold *float64      `json:"temp_threshold"`
	AdvisoryText  string        `json:"end_user_ai_instruction"`
	Source        string        `json:"source"`
}

func (r actuatorStateRequest) toState() models.ActuatorDesiredState {
	threshold := models.DefaultTempThreshold
	if r.TempThreshold != nil {
		threshold = *r.TempThreshold
	}
	return models.ActuatorDesiredState{
		ModeRequest:   models.Mode(r.ModeRequest),
		AC:            r.AC,
		Fan:           r.Fan,
		TempThreshold: threshold,
		AdvisoryText:  r.AdvisoryText,
		Source:        r.Source,
	}
}

// ActuatorStateRequest is an exported model for Swagger docs of the actuator payload.
type ActuatorStateRequest struct {
	// Control mode. Allowed: manual, auto, ai
	ModeRequest string `json:"mode_request" example:"auto"`
	// AC relay, 0 or 1 (booleans accepted)
	AC int `json:"ac" example:"0"`
	// Fan relay, 0 or 1 (booleans accepted)
	Fan int `json:"fan" example:"1"`
	// Switch-on threshold in Celsius for auto mode
	TempThreshold float64 `json:"temp_threshold" example:"26"`
	// Free-text instruction for ai mode
	AdvisoryText string `json:"end_user_ai_instruction" example:"keep the bedroom cool at night"`
	// Writer of the state
	Source string `json:"source" example:"web_client"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get actuator state
// @Description  Returns the default state when nothing has been written yet
// @Tags         actuator
// @Produce      json
// @Success      200  {object}  models.ActuatorRecord
// @Failure      500  {object}  map[string]string
// @Router       /api/actuator/state [get]
func (h *Handler) getActuatorState(c *gin.Context) {
	st, err := h.services.Actuator.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetActuator, "actuator_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Replace actuator state
// @Tags         actuator
// @Accept       json
// @Produce      json
// @Param        body  body   ActuatorStateRequest  true  "Actuator state"
// @Success      200   {object}  map[string]interface{}  "status, api_state"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/actuator/state [post]
func (h *Handler) postActuatorState(c *gin.Context) {
	var req actuatorStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rec, err := h.services.Actuator.UpdateState(c.Request.Context(), req.toState())
	if err != nil {
		h.serviceError(c, errSaveActuator, "actuator_update_failed", err, "mode", req.ModeRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "api_state": rec})
}
