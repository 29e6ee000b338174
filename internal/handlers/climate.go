package handlers

import (
	"net/http"

	"cooling_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errGetSettings  = "failed to load ac settings"
	errSaveSettings = "failed to save ac settings"
)

// ManualRequest is the manual control payload. Absent fields fall back to
// the factory settings.
type ManualRequest struct {
	IsOn       bool     `json:"is_on" example:"true"`
	TargetTemp *float64 `json:"target_temp" example:"22"`
	Mode       string   `json:"mode" example:"cool"`
}

func (r ManualRequest) toSettings() models.ManualSettings {
	out := models.ManualSettings{IsOn: r.IsOn, TargetTemp: models.DefaultTargetTemp, Mode: models.ClimateMode(r.Mode)}
	if r.TargetTemp != nil {
		out.TargetTemp = *r.TargetTemp
	}
	if r.Mode == "" {
		out.Mode = models.ClimateCool
	}
	return out
}

// AutomationRequest is the automation rule payload.
type AutomationRequest struct {
	AutomationEnabled bool     `json:"automation_enabled" example:"true"`
	ThresholdTemp     *float64 `json:"threshold_temp" example:"25"`
}

func (r AutomationRequest) toRule() models.AutomationRule {
	out := models.AutomationRule{AutomationEnabled: r.AutomationEnabled, ThresholdTemp: models.DefaultThresholdTemp}
	if r.ThresholdTemp != nil {
		out.ThresholdTemp = *r.ThresholdTemp
	}
	return out
}

// @Summary      Get AC settings
// @Tags         ac
// @Produce      json
// @Success      200  {object}  models.AutomationSettings
// @Failure      500  {object}  map[string]string
// @Router       /api/ac/settings [get]
func (h *Handler) getClimateSettings(c *gin.Context) {
	st, err := h.services.Climate.Settings(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSettings, "ac_settings_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Manual AC control
// @Description  target_temp must be within 16..30; mode is cool, heat or fan
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body   ManualRequest  true  "Manual settings"
// @Success      200   {object}  map[string]interface{}  "status, settings"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/ac/manual [post]
func (h *Handler) postManual(c *gin.Context) {
	var req ManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Climate.SetManual(c.Request.Context(), req.toSettings())
	if err != nil {
		h.serviceError(c, errSaveSettings, "ac_manual_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "settings": st})
}

// @Summary      AC automation rule
// @Description  threshold_temp must be within 15..40
// @Tags         ac
// @Accept       json
// @Produce      json
// @Param        body  body   AutomationRequest  true  "Automation rule"
// @Success      200   {object}  map[string]interface{}  "status, settings"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/ac/automation [post]
func (h *Handler) postAutomation(c *gin.Context) {
	var req AutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Climate.SetAutomation(c.Request.Context(), req.toRule())
	if err != nil {
		h.serviceError(c, errSaveSettings, "ac_automation_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "settings": st})
}
