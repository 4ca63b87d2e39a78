package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/stretchr/testify/assert"
)

type staticReader struct {
	snapshot sensors.Snapshot
}

func (r *staticReader) Read(ctx context.Context) (sensors.Snapshot, error) {
	return r.snapshot, nil
}

type noopActuator struct{}

func (a *noopActuator) SetSpeed(ctx context.Context, fanId int, speed int) error {
	return nil
}

// creates a rest service for a control loop that completed a single cycle
func createTestService(t *testing.T) *echo.Echo {
	config := &configuration.Configuration{
		Interval: time.Second,
		Sensors: []configuration.SensorConfig{
			{ID: "cpu", Chip: "k10temp-pci-00c3", Group: "Tctl", Field: "temp1_input"},
			{ID: "gpu0", Chip: "amdgpu-pci-0300", Group: "junction", Field: "temp2_input"},
		},
		Fans: []configuration.FanConfig{
			{ID: 1, Sensors: []string{"cpu"}},
			{ID: 2, Sensors: []string{"cpu", "gpu0"}},
		},
		Curve: []configuration.CurvePoint{
			{Temp: 50, Speed: 8},
			{Temp: 40, Speed: 5},
		},
	}
	reader := &staticReader{snapshot: sensors.Snapshot{
		"k10temp-pci-00c3": {"Tctl": {"temp1_input": 45}},
		"amdgpu-pci-0300":  {"junction": {"temp2_input": 60}},
	}}

	loop, err := controller.NewFanControlLoop(config, reader, &noopActuator{})
	assert.NoError(t, err)
	loop.RunCycle(context.Background())

	return CreateRestService(loop)
}

func get(service *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	service.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSensors(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/sensor/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result map[string]float64
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, map[string]float64{"cpu": 45, "gpu0": 60}, result)
}

func TestGetSensor(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/sensor/gpu0/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result SensorValue
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, SensorValue{ID: "gpu0", Value: 60}, result)
}

func TestGetSensor_NotFound(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/sensor/gpu1/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFans(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/fan/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result map[string]controller.FanState
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result, 2)
	assert.Equal(t, 7, result["1"].Speed)
	// gpu0 is hotter than the last control point
	assert.Equal(t, 8, result["2"].Speed)
	assert.Equal(t, 60.0, result["2"].Temperature)
}

func TestGetFan(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/fan/1/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result controller.FanState
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.ID)
	assert.Equal(t, []string{"cpu"}, result.Sensors)
	assert.Equal(t, 45.0, result.Temperature)
	assert.Equal(t, 7, result.Speed)
	assert.Empty(t, result.Error)
}

func TestGetFan_NotFound(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	notConfigured := get(service, "/fan/3/")
	notANumber := get(service, "/fan/abc/")

	// THEN
	assert.Equal(t, http.StatusNotFound, notConfigured.Code)
	assert.Equal(t, http.StatusNotFound, notANumber.Code)
}

func TestGetCurve(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/curve/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result []configuration.CurvePoint
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, []configuration.CurvePoint{{Temp: 40, Speed: 5}, {Temp: 50, Speed: 8}}, result)
}

func TestGetStatus(t *testing.T) {
	// GIVEN
	service := createTestService(t)

	// WHEN
	rec := get(service, "/status/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var result Status
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "stopped", result.State)
	assert.Equal(t, 1, result.Statistics.Cycles)
	assert.Equal(t, 0, result.Statistics.SkippedCycles)
}

func TestMetricsService(t *testing.T) {
	// GIVEN
	service := CreateMetricsService()

	// WHEN
	rec := get(service, "/metrics")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
