package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/markusressel/fan2ipmi/internal/curves"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
)

type mockControlLoop struct {
	statistics controller.Statistics
	sample     sensors.Sample
	fans       map[int]controller.FanState
}

func (m *mockControlLoop) Run(ctx context.Context) error {
	return errors.New("not supported")
}

func (m *mockControlLoop) RunCycle(ctx context.Context) controller.CycleResult {
	return controller.CycleResult{}
}

func (m *mockControlLoop) GetState() controller.State {
	return controller.StateRunning
}

func (m *mockControlLoop) GetStatistics() controller.Statistics {
	return m.statistics
}

func (m *mockControlLoop) GetSample() sensors.Sample {
	return m.sample
}

func (m *mockControlLoop) GetFanStates() map[int]controller.FanState {
	return m.fans
}

func (m *mockControlLoop) GetCurve() *curves.SpeedCurve {
	curve, _ := curves.NewSpeedCurve([]configuration.CurvePoint{{Temp: 40, Speed: 5}})
	return curve
}

type collectedMetric struct {
	desc  *prometheus.Desc
	id    string
	value float64
}

func collect(t *testing.T, collector prometheus.Collector) []collectedMetric {
	ch := make(chan prometheus.Metric, 100)
	collector.Collect(ch)
	close(ch)

	var result []collectedMetric
	for metric := range ch {
		m := &dto.Metric{}
		err := metric.Write(m)
		assert.NoError(t, err)

		entry := collectedMetric{desc: metric.Desc()}
		for _, label := range m.GetLabel() {
			if label.GetName() == "id" {
				entry.id = label.GetValue()
			}
		}
		if m.GetGauge() != nil {
			entry.value = m.GetGauge().GetValue()
		} else if m.GetCounter() != nil {
			entry.value = m.GetCounter().GetValue()
		}
		result = append(result, entry)
	}
	return result
}

func valueOf(t *testing.T, metrics []collectedMetric, desc *prometheus.Desc, id string) float64 {
	for _, metric := range metrics {
		if metric.desc == desc && metric.id == id {
			return metric.value
		}
	}
	t.Fatalf("metric %s with id '%s' not found", desc, id)
	return 0
}

func TestSensorCollector(t *testing.T) {
	// GIVEN
	loop := &mockControlLoop{sample: sensors.Sample{"cpu": 45.5, "gpu0": 70}}
	collector := NewSensorCollector(loop)

	// WHEN
	metrics := collect(t, collector)

	// THEN
	assert.Len(t, metrics, 2)
	assert.Equal(t, 45.5, valueOf(t, metrics, collector.value, "cpu"))
	assert.Equal(t, 70.0, valueOf(t, metrics, collector.value, "gpu0"))
}

func TestFanCollector(t *testing.T) {
	// GIVEN
	loop := &mockControlLoop{fans: map[int]controller.FanState{
		1: {ID: 1, Temperature: 50, Speed: 16},
		2: {ID: 2, Temperature: 90, Speed: 60, Error: "exit status 1"},
	}}
	collector := NewFanCollector(loop)

	// WHEN
	metrics := collect(t, collector)

	// THEN
	assert.Len(t, metrics, 6)
	assert.Equal(t, 16.0, valueOf(t, metrics, collector.speed, "1"))
	assert.Equal(t, 60.0, valueOf(t, metrics, collector.speed, "2"))
	assert.Equal(t, 90.0, valueOf(t, metrics, collector.temp, "2"))
	assert.Equal(t, 1.0, valueOf(t, metrics, collector.ok, "1"))
	assert.Equal(t, 0.0, valueOf(t, metrics, collector.ok, "2"))
}

func TestControllerCollector(t *testing.T) {
	// GIVEN
	loop := &mockControlLoop{statistics: controller.Statistics{
		Cycles:            10,
		SkippedCycles:     2,
		ActuationFailures: 3,
		AvgCycleDuration:  1500 * time.Millisecond,
		MaxCycleDuration:  2 * time.Second,
		LastCycle:         time.Unix(1700000000, 0),
	}}
	collector := NewControllerCollector(loop)

	// WHEN
	metrics := collect(t, collector)

	// THEN
	assert.Len(t, metrics, 6)
	assert.Equal(t, 10.0, valueOf(t, metrics, collector.cycles, ""))
	assert.Equal(t, 2.0, valueOf(t, metrics, collector.skippedCycles, ""))
	assert.Equal(t, 3.0, valueOf(t, metrics, collector.actuationFailures, ""))
	assert.Equal(t, 1.5, valueOf(t, metrics, collector.avgCycleDuration, ""))
	assert.Equal(t, 2.0, valueOf(t, metrics, collector.maxCycleDuration, ""))
	assert.Equal(t, 1700000000.0, valueOf(t, metrics, collector.lastCycleTimestamp, ""))
}

func TestControllerCollector_NoCycleYet(t *testing.T) {
	// GIVEN
	collector := NewControllerCollector(&mockControlLoop{})

	// WHEN
	metrics := collect(t, collector)

	// THEN
	assert.Len(t, metrics, 5)
}
