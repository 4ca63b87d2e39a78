package sensor

import (
	"testing"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/stretchr/testify/assert"
)

func TestGetSensorConfig(t *testing.T) {
	// GIVEN
	sensorConfigs := []configuration.SensorConfig{
		{ID: "cpu", Chip: "k10temp-pci-00c3", Group: "Tctl", Field: "temp1_input"},
		{ID: "gpu0", Chip: "amdgpu-pci-0300", Group: "junction", Field: "temp2_input"},
	}

	// WHEN
	sensorConfig, err := getSensorConfig("gpu0", sensorConfigs)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "amdgpu-pci-0300/junction/temp2_input", sensorConfig.Path())

	_, err = getSensorConfig("gpu1", sensorConfigs)
	assert.EqualError(t, err, "no sensor with id found: gpu1, options: [cpu gpu0]")
}

func TestRenderSensorTable(t *testing.T) {
	// GIVEN
	snapshot := sensors.Snapshot{
		"k10temp-pci-00c3": {"Tctl": {"temp1_input": 45.5}},
	}
	sensorConfigs := []configuration.SensorConfig{
		{ID: "cpu", Chip: "k10temp-pci-00c3", Group: "Tctl", Field: "temp1_input"},
		{ID: "gpu%d", Chip: "amdgpu-pci-0300", Group: "junction", Field: "temp2_input"},
	}

	// WHEN
	result := renderSensorTable(snapshot, sensorConfigs, false)

	// THEN
	assert.Contains(t, result, "45.5°C")
	assert.Contains(t, result, "gpu%d")
	assert.Contains(t, result, "sensor 'gpu%d': chip 'amdgpu-pci-0300' not found")
}
