package controller

import (
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/markusressel/fan2ipmi/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const cycleDurationWindowSize = 10

// FanState is the last known state of a fan
type FanState struct {
	ID          int       `json:"id"`
	Sensors     []string  `json:"sensors"`
	Temperature float64   `json:"temperature"`
	Speed       int       `json:"speed"`
	Error       string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Statistics struct {
	Cycles            int           `json:"cycles"`
	SkippedCycles     int           `json:"skippedCycles"`
	ActuationFailures int           `json:"actuationFailures"`
	AvgCycleDuration  time.Duration `json:"avgCycleDuration"`
	MaxCycleDuration  time.Duration `json:"maxCycleDuration"`
	LastCycle         time.Time     `json:"lastCycle"`
}

// status is written by the control loop only and read by observers (metrics, api)
type status struct {
	temperatures cmap.ConcurrentMap[string, float64]
	fans         cmap.ConcurrentMap[int, FanState]

	mu             sync.Mutex
	statistics     Statistics
	cycleDurations *rolling.PointPolicy
}

func newStatus() *status {
	return &status{
		temperatures: cmap.New[float64](),
		fans: cmap.NewWithCustomShardingFunction[int, FanState](func(key int) uint32 {
			return uint32(key)
		}),
		cycleDurations: util.CreateRollingWindow(cycleDurationWindowSize),
	}
}

func (s *status) updateSample(sample sensors.Sample) {
	for id, value := range sample {
		s.temperatures.Set(id, value)
	}
}

func (s *status) updateFan(result FanResult, sensorIds []string, timestamp time.Time) {
	state, _ := s.fans.Get(result.Fan)
	state.ID = result.Fan
	state.Sensors = sensorIds
	state.UpdatedAt = timestamp
	if result.Err != nil {
		// speed and temperature keep their last successfully applied values
		state.Error = result.Err.Error()
	} else {
		state.Error = ""
		state.Temperature = result.Temperature
		state.Speed = result.Speed
	}
	s.fans.Set(result.Fan, state)
}

func (s *status) recordCycle(result CycleResult, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statistics.Cycles == 0 {
		util.FillWindow(s.cycleDurations, cycleDurationWindowSize, float64(duration))
	} else {
		s.cycleDurations.Append(float64(duration))
	}

	s.statistics.Cycles++
	s.statistics.LastCycle = result.Timestamp
	if result.Err != nil {
		s.statistics.SkippedCycles++
	}
	for _, fan := range result.Fans {
		if fan.Err != nil {
			s.statistics.ActuationFailures++
		}
	}
	s.statistics.AvgCycleDuration = time.Duration(util.GetWindowAvg(s.cycleDurations))
	s.statistics.MaxCycleDuration = time.Duration(util.GetWindowMax(s.cycleDurations))
}

func (s *status) getStatistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statistics
}

func (s *status) getSample() sensors.Sample {
	return s.temperatures.Items()
}

func (s *status) getFanStates() map[int]FanState {
	return s.fans.Items()
}
