package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel-backend/internal/apperr"
	"hostel-backend/internal/sensor"
)

// FakeHeadcount returns a simulated occupancy reading.
func (h *Handler) FakeHeadcount(c *gin.Context) {
	h.rngMu.Lock()
	reading := sensor.Headcount(h.now(), h.rng, h.sensors.Holidays, h.sensors.DeviceID)
	h.rngMu.Unlock()

	c.JSON(http.StatusOK, reading)
}

// FoodPrediction estimates food demand from query parameters. Missing
// parameters fall back to defaults.
func (h *Handler) FoodPrediction(c *gin.Context) {
	in := sensor.DefaultFoodInput()

	params := []struct {
		name string
		dst  *float64
	}{
		{"headcount", &in.Headcount},
		{"temperature", &in.Temperature},
		{"humidity", &in.Humidity},
	}
	for _, p := range params {
		raw := c.Query(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			apperr.Respond(c, apperr.BadRequest(fmt.Sprintf("%s must be a number", p.name)))
			return
		}
		*p.dst = v
	}
	in.IsHoliday = c.Query("isHoliday") == "true"

	c.JSON(http.StatusOK, sensor.PredictFood(in))
}
