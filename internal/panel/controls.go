package panel

import (
	"errors"
	"io"

	"cooling_dashboard/internal/dashboard"
	"cooling_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

type modeRequest struct {
	Mode models.Mode `json:"mode" binding:"required"` // manual | auto | ai
}

type switchRequest struct {
	On *models.Switch `json:"on" binding:"required"` // true/false or 1/0
}

type thresholdRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

type advisoryRequest struct {
	Text string `json:"text"`
}

// commitRequest is a partial update; omitted fields keep the current control value.
type commitRequest struct {
	ModeRequest   *models.Mode   `json:"mode_request,omitempty"`
	AC            *models.Switch `json:"ac,omitempty"`
	Fan           *models.Switch `json:"fan,omitempty"`
	TempThreshold *float64       `json:"temp_threshold,omitempty"`
	AdvisoryText  *string        `json:"end_user_ai_instruction,omitempty"`
}

func (r commitRequest) patch() dashboard.Patch {
	p := dashboard.Patch{Mode: r.ModeRequest, Threshold: r.TempThreshold, Advisory: r.AdvisoryText}
	if r.AC != nil {
		on := bool(*r.AC)
		p.AC = &on
	}
	if r.Fan != nil {
		on := bool(*r.Fan)
		p.Fan = &on
	}
	return p
}

// @Summary      Select the active mode
// @Tags         controls
// @Accept       json
// @Produce      json
// @Param        body  body  modeRequest  true  "mode"
// @Success      200  {object}  map[string]interface{}  "status, view"
// @Failure      400  {object}  map[string]string
// @Router       /api/controls/mode [post]
func (h *Handler) setMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_set_mode_failed", h.engine.SelectMode(c.Request.Context(), req.Mode))
}

// @Summary      Edit the AC switch
// @Tags         controls
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, view"
// @Failure      409  {object}  map[string]interface{}  "disabled in the current mode"
// @Router       /api/controls/ac [post]
func (h *Handler) setAC(c *gin.Context) {
	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_set_ac_failed", h.engine.SetAC(c.Request.Context(), bool(*req.On)))
}

// @Summary      Edit the fan switch
// @Tags         controls
// @Router       /api/controls/fan [post]
func (h *Handler) setFan(c *gin.Context) {
	var req switchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_set_fan_failed", h.engine.SetFan(c.Request.Context(), bool(*req.On)))
}

// @Summary      Edit the temperature threshold
// @Tags         controls
// @Router       /api/controls/threshold [post]
func (h *Handler) setThreshold(c *gin.Context) {
	var req thresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_set_threshold_failed", h.engine.SetThreshold(c.Request.Context(), *req.Value))
}

// @Summary      Edit the advisory text
// @Tags         controls
// @Router       /api/controls/advisory [post]
func (h *Handler) setAdvisory(c *gin.Context) {
	var req advisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_set_advisory_failed", h.engine.SetAdvisory(c.Request.Context(), req.Text))
}

// @Summary      Commit the controls to the device
// @Description  Body is an optional partial update applied over the current controls.
// @Tags         actuator
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, view"
// @Failure      502  {object}  map[string]interface{}  "remote failed"
// @Router       /api/commit [post]
func (h *Handler) commit(c *gin.Context) {
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_commit_failed", h.engine.Commit(c.Request.Context(), req.patch()))
}

// @Summary      Reconcile with the device state now
// @Tags         actuator
// @Router       /api/reconcile [post]
func (h *Handler) reconcile(c *gin.Context) {
	h.respond(c, "panel_reconcile_failed", h.engine.Reconcile(c.Request.Context()))
}

// @Summary      Update the AC manual settings
// @Tags         ac
// @Router       /api/ac/manual [post]
func (h *Handler) setManual(c *gin.Context) {
	in := models.ManualSettings{TargetTemp: models.DefaultTargetTemp, Mode: models.ClimateCool}
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_ac_manual_failed", h.engine.SetManual(c.Request.Context(), in))
}

// @Summary      Update the AC automation rule
// @Tags         ac
// @Router       /api/ac/automation [post]
func (h *Handler) setAutomation(c *gin.Context) {
	in := models.AutomationRule{ThresholdTemp: models.DefaultThresholdTemp}
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c, err)
		return
	}
	h.respond(c, "panel_ac_automation_failed", h.engine.SetAutomation(c.Request.Context(), in))
}
