package sensors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/markusressel/fan2ipmi/internal/util"
)

// CmdReader runs an external command that prints a snapshot in the JSON format of `sensors -j`
type CmdReader struct {
	Exec    string
	Args    []string
	Timeout time.Duration
}

func (r *CmdReader) Read(ctx context.Context) (Snapshot, error) {
	source := strings.TrimSpace(r.Exec + " " + strings.Join(r.Args, " "))

	output, err := util.SafeCmdExecution(ctx, r.Exec, r.Args, r.Timeout)
	if err != nil {
		return nil, &ReadError{Source: source, Err: err}
	}

	snapshot, err := ParseSnapshot([]byte(output))
	if err != nil {
		return nil, &ReadError{Source: source, Err: err}
	}

	return snapshot, nil
}

// ParseSnapshot parses the JSON output of `sensors -j`.
// Entries that are not readings, like the "Adapter" name of a chip, are skipped.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var chips map[string]json.RawMessage
	if err := json.Unmarshal(data, &chips); err != nil {
		return nil, fmt.Errorf("malformed sensor output: %w", err)
	}
	if chips == nil {
		return nil, errors.New("malformed sensor output: expected a JSON object")
	}

	snapshot := Snapshot{}
	for chipName, chipRaw := range chips {
		var groups map[string]json.RawMessage
		if err := json.Unmarshal(chipRaw, &groups); err != nil {
			ui.Debug("Skipping chip '%s': %v", chipName, err)
			continue
		}

		chip := map[string]map[string]float64{}
		for groupName, groupRaw := range groups {
			var fields map[string]json.RawMessage
			if err := json.Unmarshal(groupRaw, &fields); err != nil {
				// e.g. "Adapter": "PCI adapter"
				continue
			}

			group := map[string]float64{}
			for fieldName, fieldRaw := range fields {
				var value float64
				if err := json.Unmarshal(fieldRaw, &value); err != nil {
					continue
				}
				group[fieldName] = value
			}
			chip[groupName] = group
		}
		snapshot[chipName] = chip
	}

	return snapshot, nil
}
