package handlers

import (
	"net/http"

	"cooling_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	errSaveTelemetry = "failed to store telemetry"
	errLoadHistory   = "failed to load telemetry"
)

// @Summary      Ingest telemetry
// @Description  Device document with inside and outside probes. ts defaults to now, unit to C.
// @Tags         telemetry
// @Accept       json
// @Produce      json
// @Param        body  body   models.DeviceTelemetry  true  "Device telemetry"
// @Success      200   {object}  map[string]interface{}  "status, id"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/telemetry [post]
func (h *Handler) postTelemetry(c *gin.Context) {
	var doc models.DeviceTelemetry
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id, err := h.services.Telemetry.Record(c.Request.Context(), doc)
	if err != nil {
		h.serviceError(c, errSaveTelemetry, "telemetry_record_failed", err, "device_id", doc.DeviceID)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "id": id})
}

// @Summary      Telemetry history
// @Description  Most recent readings, newest first
// @Tags         telemetry
// @Produce      json
// @Success      200  {array}   models.TelemetryRecord
// @Failure      500  {object}  map[string]string
// @Router       /api/data [get]
func (h *Handler) getData(c *gin.Context) {
	recs, err := h.services.Monitoring.History(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errLoadHistory, "telemetry_history_failed", err)
		return
	}
	if recs == nil {
		recs = []models.TelemetryRecord{}
	}
	c.JSON(http.StatusOK, recs)
}
