package sensors

import (
	"fmt"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/util"
)

// Level is a segment of the chip/group/field path of a sensor
type Level string

const (
	LevelChip  Level = "chip"
	LevelGroup Level = "group"
	LevelField Level = "field"
)

// ExtractionError is returned when the path of a logical sensor does not exist in a snapshot.
// It is a configuration error: the mapping does not match the hardware.
type ExtractionError struct {
	// Sensor is the logical sensor name
	Sensor string
	// Level is the first part of the path that could not be found
	Level Level
	// Key is the name that was looked up at Level
	Key string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("sensor '%s': %s '%s' not found", e.Sensor, e.Level, e.Key)
}

func (e *ExtractionError) Is(target error) bool {
	return target == configuration.ErrConfiguration
}

// Extract looks up every configured sensor in the given snapshot.
// Sensors are processed in order of their id, so that the reported error is deterministic.
func Extract(snapshot Snapshot, mapping []configuration.SensorConfig) (Sample, error) {
	byId := make(map[string]configuration.SensorConfig, len(mapping))
	for _, sensorConfig := range mapping {
		byId[sensorConfig.ID] = sensorConfig
	}

	sample := make(Sample, len(mapping))
	for _, id := range util.SortedKeys(byId) {
		sensorConfig := byId[id]

		chip, ok := snapshot[sensorConfig.Chip]
		if !ok {
			return nil, &ExtractionError{Sensor: id, Level: LevelChip, Key: sensorConfig.Chip}
		}
		group, ok := chip[sensorConfig.Group]
		if !ok {
			return nil, &ExtractionError{Sensor: id, Level: LevelGroup, Key: sensorConfig.Group}
		}
		value, ok := group[sensorConfig.Field]
		if !ok {
			return nil, &ExtractionError{Sensor: id, Level: LevelField, Key: sensorConfig.Field}
		}

		sample[id] = value
	}

	return sample, nil
}
