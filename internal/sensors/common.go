package sensors

import (
	"context"
	"fmt"

	"github.com/markusressel/fan2ipmi/internal/configuration"
)

// Snapshot is a raw sensor reading: chip -> feature group -> field -> value
type Snapshot map[string]map[string]map[string]float64

// Sample maps logical sensor names to temperatures in °C
type Sample map[string]float64

// Reader acquires a fresh Snapshot of all sensors on each call
type Reader interface {
	Read(ctx context.Context) (Snapshot, error)
}

// ReadError is returned by a Reader when no snapshot could be acquired.
// It indicates a transient problem, the next read may succeed.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unable to read sensors using %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

func NewReader(config configuration.ReaderConfig) (Reader, error) {
	switch config.Type {
	case configuration.ReaderTypeCmd:
		return &CmdReader{
			Exec:    config.Exec,
			Args:    config.Args,
			Timeout: config.Timeout,
		}, nil
	case configuration.ReaderTypeLibSensors:
		return &LibSensorsReader{}, nil
	}

	return nil, fmt.Errorf("no matching sensor reader type: %s", config.Type)
}
