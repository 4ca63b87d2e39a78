package sensors

import (
	"context"
	"fmt"
	"sync"

	"github.com/md14454/gosensors"
)

var libSensorsMu sync.Mutex

// LibSensorsReader reads all chips known to libsensors directly,
// producing the same structure as `sensors -j`
type LibSensorsReader struct {
}

func (r *LibSensorsReader) Read(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Source: "libsensors", Err: err}
	}

	libSensorsMu.Lock()
	defer libSensorsMu.Unlock()

	gosensors.Init()
	defer gosensors.Cleanup()

	chips := gosensors.GetDetectedChips()
	if len(chips) <= 0 {
		return nil, &ReadError{Source: "libsensors", Err: fmt.Errorf("no chips detected")}
	}

	snapshot := Snapshot{}
	for _, chip := range chips {
		groups := map[string]map[string]float64{}
		for _, feature := range chip.GetFeatures() {
			fields := map[string]float64{}
			for _, subfeature := range feature.GetSubFeatures() {
				fields[subfeature.Name] = subfeature.GetValue()
			}
			groups[feature.GetLabel()] = fields
		}
		snapshot[fmt.Sprintf("%v", chip)] = groups
	}

	return snapshot, nil
}
