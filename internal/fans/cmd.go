package fans

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/util"
)

// CmdActuator sets the fan speed by running an external command, e.g. ipmitool
type CmdActuator struct {
	Exec string
	// Args may contain the %fan% and %speed% placeholders
	Args      []string
	ArgFormat string
	Timeout   time.Duration
}

func (a *CmdActuator) SetSpeed(ctx context.Context, fanId int, speed int) error {
	if speed < MinSpeedValue || speed > MaxSpeedValue {
		return &SpeedOutOfRangeError{Fan: fanId, Speed: speed}
	}

	args := a.Command(fanId, speed)

	_, err := util.SafeCmdExecution(ctx, a.Exec, args, a.Timeout)
	if err != nil {
		actuationErr := &ActuationError{
			Fan:     fanId,
			Command: strings.TrimSpace(a.Exec + " " + strings.Join(args, " ")),
			Err:     err,
		}
		var cmdErr *util.CmdError
		if errors.As(err, &cmdErr) {
			actuationErr.Detail = cmdErr.Output
			actuationErr.Err = cmdErr.Err
		}
		return actuationErr
	}

	return nil
}

// Command returns the arguments used to set the given fan to the given speed
func (a *CmdActuator) Command(fanId int, speed int) []string {
	fan := a.formatArg(fanId)
	value := a.formatArg(speed)

	var args = []string{}
	for _, arg := range a.Args {
		replaced := strings.ReplaceAll(arg, configuration.PlaceholderFan, fan)
		replaced = strings.ReplaceAll(replaced, configuration.PlaceholderSpeed, value)
		args = append(args, replaced)
	}
	return args
}

func (a *CmdActuator) formatArg(value int) string {
	if a.ArgFormat == configuration.ArgFormatDecimal {
		return strconv.Itoa(value)
	}
	return fmt.Sprintf("0x%02x", value)
}
