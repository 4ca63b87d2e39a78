package configuration

import (
	"fmt"
	"time"
)

// SensorConfig maps a logical sensor name to its location in a sensor reading,
// as printed by `sensors -j`: chip -> feature group -> field
type SensorConfig struct {
	ID    string `json:"id"`
	Chip  string `json:"chip"`
	Group string `json:"group"`
	Field string `json:"field"`
}

func (c SensorConfig) Path() string {
	return fmt.Sprintf("%s/%s/%s", c.Chip, c.Group, c.Field)
}

const (
	ReaderTypeCmd        = "cmd"
	ReaderTypeLibSensors = "libsensors"
)

type ReaderConfig struct {
	// Type is one of: cmd | libsensors
	Type string `json:"type"`
	// Exec and Args are used by the cmd reader, its output must be the JSON format of `sensors -j`
	Exec    string        `json:"exec"`
	Args    []string      `json:"args"`
	Timeout time.Duration `json:"timeout"`
}
