package handlers

import (
	"net/http"
	"time"

	"cooling_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

// Layouts of the ServerClock fields.
const (
	clockDate = "2006-01-02"
	clockTime = "15:04:05"
)

// @Summary      Current weather
// @Description  Falls back to sample data when the provider is unavailable
// @Tags         display
// @Produce      json
// @Success      200  {object}  models.CurrentWeather
// @Router       /api/weather/current [get]
func (h *Handler) getWeatherCurrent(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Weather.Current(c.Request.Context()))
}

// @Summary      Weather forecast
// @Description  One entry per day, at most five
// @Tags         display
// @Produce      json
// @Success      200  {object}  models.Forecast
// @Router       /api/weather/forecast [get]
func (h *Handler) getWeatherForecast(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Weather.Forecast(c.Request.Context()))
}

// @Summary      Server clock
// @Tags         display
// @Produce      json
// @Success      200  {object}  models.ServerClock
// @Router       /api/datetime [get]
func (h *Handler) getDatetime(c *gin.Context) {
	c.JSON(http.StatusOK, serverClock(time.Now()))
}

func serverClock(now time.Time) models.ServerClock {
	return models.ServerClock{
		Timestamp: now.Unix(),
		Datetime:  now.Format(clockDate + " " + clockTime),
		Date:      now.Format(clockDate),
		Time:      now.Format(clockTime),
		Weekday:   now.Weekday().String(),
	}
}
