package curves

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/util"
)

// SpeedCurve maps a temperature to a fan speed in percent using
// linear interpolation between a set of control points
type SpeedCurve struct {
	// points sorted by temperature, ascending
	points []configuration.CurvePoint
}

// NewSpeedCurve creates a new curve from the given control points.
// The points may be given in any order, but their temperatures must be distinct.
func NewSpeedCurve(points []configuration.CurvePoint) (*SpeedCurve, error) {
	if len(points) <= 0 {
		return nil, errors.New("curve needs at least one control point")
	}

	sorted := make([]configuration.CurvePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Temp < sorted[j].Temp
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Temp == sorted[i-1].Temp {
			return nil, fmt.Errorf("curve has multiple control points for temperature %v°C", sorted[i].Temp)
		}
	}

	return &SpeedCurve{points: sorted}, nil
}

// Evaluate returns the fan speed in percent for the given temperature in °C.
// Values in between two control points are interpolated linearly and rounded half away from zero.
func (c *SpeedCurve) Evaluate(temp float64) int {
	first := c.points[0]
	last := c.points[len(c.points)-1]

	if temp <= first.Temp {
		// input is below the smallest given step, so
		// we fall back to the value of the smallest step
		return first.Speed
	}
	if temp >= last.Temp {
		// input is above (or equal to) the largest given
		// step, so we fall back to the value of the largest step
		return last.Speed
	}

	for i := 1; i < len(c.points); i++ {
		lower := c.points[i-1]
		upper := c.points[i]
		if temp > upper.Temp {
			continue
		}

		ratio := util.Ratio(temp, lower.Temp, upper.Temp)
		interpolation := float64(lower.Speed) + ratio*float64(upper.Speed-lower.Speed)
		return int(math.Round(interpolation))
	}

	// unreachable, temp < last.Temp guarantees a match above
	return last.Speed
}

// Points returns a copy of the control points, sorted by temperature
func (c *SpeedCurve) Points() []configuration.CurvePoint {
	result := make([]configuration.CurvePoint, len(c.points))
	copy(result, c.points)
	return result
}

// Interpolate evaluates the curve for every whole degree in [start..stop]
func (c *SpeedCurve) Interpolate(start int, stop int) map[int]int {
	interpolated := map[int]int{}
	for i := start; i <= stop; i++ {
		interpolated[i] = c.Evaluate(float64(i))
	}
	return interpolated
}
