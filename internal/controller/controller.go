package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/curves"
	"github.com/markusressel/fan2ipmi/internal/fans"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/markusressel/fan2ipmi/internal/util"
)

const (
	TimestampFormat = "2006-01-02 15:04:05"
)

type State int32

const (
	// StateValidating is active while the configuration is checked against a live sensor reading
	StateValidating State = iota
	// StateRunning is active while the control cycle is repeated
	StateRunning
	// StateStopped is active before Run was called and after it returned
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateRunning:
		return "running"
	default:
		return "stopped"
	}
}

type ControlLoop interface {
	// Run validates the configuration and then controls all fans until the context is cancelled
	Run(ctx context.Context) error
	// RunCycle executes a single sense -> decide -> act cycle
	RunCycle(ctx context.Context) CycleResult

	GetState() State
	GetStatistics() Statistics
	GetSample() sensors.Sample
	GetFanStates() map[int]FanState
	GetCurve() *curves.SpeedCurve
}

// FanResult is the outcome of a single fan update within a cycle
type FanResult struct {
	Fan int
	// Temperature is the highest temperature of all sensors tracked by the fan
	Temperature float64
	Speed       int
	Err         error
}

// CycleResult is the outcome of a single control cycle
type CycleResult struct {
	Timestamp time.Time
	Sample    sensors.Sample
	Fans      []FanResult
	// Err is set if the cycle was skipped before any fan was touched
	Err error
}

type DefaultControlLoop struct {
	config   *configuration.Configuration
	reader   sensors.Reader
	actuator fans.Actuator
	curve    *curves.SpeedCurve

	// fan ids in ascending order
	fanIds     []int
	fanSensors map[int][]string

	state  atomic.Int32
	status *status

	now func() time.Time
}

func NewFanControlLoop(config *configuration.Configuration, reader sensors.Reader, actuator fans.Actuator) (*DefaultControlLoop, error) {
	curve, err := curves.NewSpeedCurve(config.Curve)
	if err != nil {
		return nil, &configuration.ConfigurationError{Reason: err.Error()}
	}

	fanSensors := map[int][]string{}
	for _, fanConfig := range config.Fans {
		fanSensors[fanConfig.ID] = fanConfig.Sensors
	}

	l := &DefaultControlLoop{
		config:     config,
		reader:     reader,
		actuator:   actuator,
		curve:      curve,
		fanIds:     util.SortedKeys(fanSensors),
		fanSensors: fanSensors,
		status:     newStatus(),
		now:        time.Now,
	}
	l.setState(StateStopped)

	return l, nil
}

func (l *DefaultControlLoop) Run(ctx context.Context) error {
	defer l.setState(StateStopped)

	l.setState(StateValidating)
	ui.Info("Validating configuration against current sensor readings...")
	err := l.Validate(ctx)
	if err != nil {
		return err
	}

	l.setState(StateRunning)
	ui.Info("Starting control loop for %d fan(s), interval: %s", len(l.fanIds), l.config.Interval)

	// a started cycle always runs to completion, cancellation is only noticed while waiting
	cycleCtx := context.WithoutCancel(ctx)
	for {
		l.RunCycle(cycleCtx)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.config.Interval):
		}
	}
}

// Validate checks that every sensor used by a fan is defined and available in a live reading.
// The sensor definitions are checked before any sensor is read.
func (l *DefaultControlLoop) Validate(ctx context.Context) error {
	err := configuration.ValidateFanSensors(l.config)
	if err != nil {
		return err
	}

	snapshot, err := l.reader.Read(ctx)
	if err != nil {
		return err
	}

	sample, err := sensors.Extract(snapshot, l.config.Sensors)
	if err != nil {
		return err
	}

	return ValidateSample(l.config, sample)
}

func (l *DefaultControlLoop) RunCycle(ctx context.Context) (result CycleResult) {
	start := l.now()
	result.Timestamp = start
	timestamp := start.Format(TimestampFormat)

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("unexpected error in control cycle: %v", r)
			ui.Error("[%s] %v", timestamp, result.Err)
		}
		l.status.recordCycle(result, l.now().Sub(start))
	}()

	snapshot, err := l.reader.Read(ctx)
	if err != nil {
		result.Err = err
		reportSkippedCycle(timestamp, err)
		return result
	}

	sample, err := sensors.Extract(snapshot, l.config.Sensors)
	if err != nil {
		result.Err = err
		reportSkippedCycle(timestamp, err)
		return result
	}
	result.Sample = sample
	l.status.updateSample(sample)

	var parts []string
	for _, fanId := range l.fanIds {
		fanResult := l.updateFan(ctx, fanId, sample)
		result.Fans = append(result.Fans, fanResult)
		l.status.updateFan(fanResult, l.fanSensors[fanId], start)

		if fanResult.Err != nil {
			reportFanError(timestamp, fanResult)
			parts = append(parts, fmt.Sprintf("fan %d → failed", fanId))
		} else {
			parts = append(parts, fmt.Sprintf("fan %d → %d%%", fanId, fanResult.Speed))
		}
	}

	ui.Info("%s  %s", timestamp, strings.Join(parts, "  "))

	return result
}

// updateFan computes and applies the speed of a single fan, based on the hottest of its sensors
func (l *DefaultControlLoop) updateFan(ctx context.Context, fanId int, sample sensors.Sample) (result FanResult) {
	result.Fan = fanId
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("fan %d: unexpected error: %v", fanId, r)
		}
	}()

	var temps []float64
	for _, sensorId := range l.fanSensors[fanId] {
		temp, ok := sample[sensorId]
		if !ok {
			result.Err = &configuration.ConfigurationError{Fan: fanId, Sensor: sensorId, Reason: "no reading available"}
			return result
		}
		temps = append(temps, temp)
	}

	result.Temperature = util.Max(temps)
	result.Speed = l.curve.Evaluate(result.Temperature)
	ui.Debug("Fan %d: max temp %.1f°C of %v -> %d%%", fanId, result.Temperature, l.fanSensors[fanId], result.Speed)

	result.Err = l.actuator.SetSpeed(ctx, fanId, result.Speed)
	return result
}

func reportSkippedCycle(timestamp string, err error) {
	if errors.Is(err, configuration.ErrConfiguration) {
		ui.Error("[%s] Configuration error, skipping cycle: %v", timestamp, err)
	} else {
		ui.Error("[%s] Sensor read failed, skipping cycle: %v", timestamp, err)
	}
}

func reportFanError(timestamp string, result FanResult) {
	var rangeErr *fans.SpeedOutOfRangeError
	if errors.As(result.Err, &rangeErr) {
		ui.Error("[%s] %v, check the curve configuration", timestamp, result.Err)
		return
	}
	// the error already names the fan
	ui.Error("[%s] %v", timestamp, result.Err)
}

func (l *DefaultControlLoop) setState(state State) {
	l.state.Store(int32(state))
}

func (l *DefaultControlLoop) GetState() State {
	return State(l.state.Load())
}

func (l *DefaultControlLoop) GetCurve() *curves.SpeedCurve {
	return l.curve
}

func (l *DefaultControlLoop) GetStatistics() Statistics {
	return l.status.getStatistics()
}

func (l *DefaultControlLoop) GetSample() sensors.Sample {
	return l.status.getSample()
}

func (l *DefaultControlLoop) GetFanStates() map[int]FanState {
	return l.status.getFanStates()
}
