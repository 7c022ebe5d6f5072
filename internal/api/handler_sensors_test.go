package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-backend/internal/sensor"
)

func TestFakeHeadcount(t *testing.T) {
	env := newTestEnv(t)
	holiday := time.Date(2025, 10, 2, 10, 0, 0, 0, time.UTC)
	env.handler.now = func() time.Time { return holiday }

	w := env.do(t, http.MethodGet, "/api/iot/fake-headcount", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	r := decode[sensor.Reading](t, w)
	assert.Equal(t, "fake-device-1", r.DeviceID)
	assert.True(t, r.IsHoliday)
	assert.Equal(t, sensor.DayHoliday, r.DayType)
	assert.True(t, holiday.Equal(r.Timestamp))
	assert.GreaterOrEqual(t, r.Count, 8)
	assert.LessOrEqual(t, r.Count, 67)
	assert.GreaterOrEqual(t, r.Humidity, 40)
	assert.LessOrEqual(t, r.Humidity, 69)
}

func TestFoodPrediction(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/mess/predict", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"headcount":80,"temperature":30,"humidity":60,"predictedKg":28,"perPersonKg":0.35}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/mess/predict?headcount=100&temperature=34&humidity=50", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[sensor.Prediction](t, w)
	assert.InDelta(t, 37.0, p.PredictedKg, 1e-9)

	w = env.do(t, http.MethodGet, "/api/mess/predict?isHoliday=true", "", nil)
	p = decode[sensor.Prediction](t, w)
	assert.InDelta(t, 32.2, p.PredictedKg, 1e-9)

	w = env.do(t, http.MethodGet, "/api/mess/predict?isHoliday=yes", "", nil)
	p = decode[sensor.Prediction](t, w)
	assert.InDelta(t, 28.0, p.PredictedKg, 1e-9, "only the literal true counts")

	w = env.do(t, http.MethodGet, "/api/mess/predict?headcount=lots", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"headcount must be a number"}`, w.Body.String())
}
