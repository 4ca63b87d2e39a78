package configuration

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched (via errors.Is) by every error that is caused by a static mismatch
// between the configuration and itself or the hardware, as opposed to a transient failure.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError describes an invalid configuration entry.
// Fan and Sensor are set when the error can be attributed to a specific fan or sensor.
type ConfigurationError struct {
	Fan    int
	Sensor string
	Reason string
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Fan > 0 && len(e.Sensor) > 0:
		return fmt.Sprintf("fan %d: sensor '%s': %s", e.Fan, e.Sensor, e.Reason)
	case e.Fan > 0:
		return fmt.Sprintf("fan %d: %s", e.Fan, e.Reason)
	case len(e.Sensor) > 0:
		return fmt.Sprintf("sensor '%s': %s", e.Sensor, e.Reason)
	default:
		return e.Reason
	}
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func newConfigurationError(format string, a ...interface{}) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, a...)}
}
