package internal

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/util"
	"github.com/stretchr/testify/assert"
)

const sensorsOutput = `{
  "k10temp-pci-00c3": {
    "Adapter": "PCI adapter",
    "Tctl": {"temp1_input": 45.0}
  }
}`

// createDaemonConfig creates a configuration that reads sensors from a file and
// appends every fan speed command to the returned log file
func createDaemonConfig(t *testing.T) (*configuration.Configuration, string) {
	for _, executable := range []string{"cat", "sh"} {
		p, err := exec.LookPath(executable)
		if err == nil {
			_, err = util.CheckFilePermissionsForExecution(p)
		}
		if err != nil {
			t.Skipf("%s cannot be used for execution: %v", executable, err)
		}
	}

	dir := t.TempDir()
	sensorsFile := filepath.Join(dir, "sensors.json")
	assert.NoError(t, os.WriteFile(sensorsFile, []byte(sensorsOutput), 0o644))
	commandLog := filepath.Join(dir, "commands.log")

	config := &configuration.Configuration{
		Interval: 10 * time.Millisecond,
		Sensors: []configuration.SensorConfig{
			{ID: "cpu", Chip: "k10temp-pci-00c3", Group: "Tctl", Field: "temp1_input"},
		},
		Fans: []configuration.FanConfig{
			{ID: 1, Sensors: []string{"cpu"}},
		},
		Curve: []configuration.CurvePoint{
			{Temp: 40, Speed: 5},
			{Temp: 50, Speed: 8},
		},
		Reader: configuration.ReaderConfig{
			Type:    configuration.ReaderTypeCmd,
			Exec:    "cat",
			Args:    []string{sensorsFile},
			Timeout: 5 * time.Second,
		},
		Actuator: configuration.ActuatorConfig{
			Exec:      "sh",
			Args:      []string{"-c", "echo \"$0 $1\" >> " + commandLog, "%fan%", "%speed%"},
			ArgFormat: configuration.ArgFormatDecimal,
			Timeout:   2 * time.Second,
		},
	}
	return config, commandLog
}

func TestRunDaemon_StopsOnCancel(t *testing.T) {
	// GIVEN
	config, commandLog := createDaemonConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// WHEN
	done := make(chan error)
	go func() {
		done <- RunDaemon(ctx, config)
	}()

	assert.Eventually(t, func() bool {
		content, err := os.ReadFile(commandLog)
		return err == nil && len(content) > 0
	}, 5*time.Second, 10*time.Millisecond)
	cancel()

	// THEN
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop after cancel")
	}

	content, err := os.ReadFile(commandLog)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	assert.Equal(t, "1 7", lines[0])
}

func TestRunDaemon_ValidationFailure(t *testing.T) {
	// GIVEN
	config, commandLog := createDaemonConfig(t)
	config.Sensors = append(config.Sensors, configuration.SensorConfig{
		ID: "gpu0", Chip: "amdgpu-pci-0300", Group: "junction", Field: "temp2_input",
	})
	config.Fans = append(config.Fans, configuration.FanConfig{ID: 2, Sensors: []string{"gpu0"}})

	// WHEN
	err := RunDaemon(context.Background(), config)

	// THEN
	assert.True(t, errors.Is(err, configuration.ErrConfiguration))
	_, statErr := os.Stat(commandLog)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunDaemon_InvalidActuator(t *testing.T) {
	// GIVEN
	config, _ := createDaemonConfig(t)
	config.Actuator.ArgFormat = "octal"

	// WHEN
	err := RunDaemon(context.Background(), config)

	// THEN
	assert.Error(t, err)
}
