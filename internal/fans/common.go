package fans

import (
	"context"
	"fmt"

	"github.com/markusressel/fan2ipmi/internal/configuration"
)

const (
	MaxSpeedValue = 100
	MinSpeedValue = 0
)

// Actuator applies a fan speed (in percent) to a fan
type Actuator interface {
	SetSpeed(ctx context.Context, fanId int, speed int) error
}

// SpeedOutOfRangeError is returned when a speed outside of [0..100] is requested.
// Such values are never clamped, they indicate an invalid speed curve.
type SpeedOutOfRangeError struct {
	Fan   int
	Speed int
}

func (e *SpeedOutOfRangeError) Error() string {
	return fmt.Sprintf("fan %d: invalid speed value %d%%, must be in [%d..%d]", e.Fan, e.Speed, MinSpeedValue, MaxSpeedValue)
}

// ActuationError is returned when the actuator command failed
type ActuationError struct {
	Fan int
	// Command is the command line that was executed
	Command string
	// Detail is the error output of the failed command, if any
	Detail string
	Err    error
}

func (e *ActuationError) Error() string {
	if len(e.Detail) > 0 {
		return fmt.Sprintf("fan %d: '%s' failed: %v (%s)", e.Fan, e.Command, e.Err, e.Detail)
	}
	return fmt.Sprintf("fan %d: '%s' failed: %v", e.Fan, e.Command, e.Err)
}

func (e *ActuationError) Unwrap() error {
	return e.Err
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	switch config.ArgFormat {
	case configuration.ArgFormatHex, configuration.ArgFormatDecimal:
		return &CmdActuator{
			Exec:      config.Exec,
			Args:      config.Args,
			ArgFormat: config.ArgFormat,
			Timeout:   config.Timeout,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator for argument format: %s", config.ArgFormat)
}
