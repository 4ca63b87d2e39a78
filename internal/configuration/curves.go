package configuration

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// CurvePoint is a single control point of the speed curve
type CurvePoint struct {
	// Temp is the temperature in °C
	Temp float64 `json:"temp"`
	// Speed is the fan speed in percent
	Speed int `json:"speed"`
}

// curvePointsHookFunc returns a mapstructure decode hook that allows the speed curve
// to be written as a map of "temperature: speed" instead of a list of points.
// Both forms reject speeds that are not whole numbers.
func curvePointsHookFunc() mapstructure.DecodeHookFuncType {
	pointsType := reflect.TypeOf([]CurvePoint{})

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != pointsType {
			return data, nil
		}

		switch v := data.(type) {
		case map[string]interface{}:
			points := make([]CurvePoint, 0, len(v))
			for k, val := range v {
				point, err := parseCurvePoint(k, val)
				if err != nil {
					return nil, err
				}
				points = append(points, point)
			}
			return points, nil
		case map[interface{}]interface{}:
			points := make([]CurvePoint, 0, len(v))
			for k, val := range v {
				point, err := parseCurvePoint(k, val)
				if err != nil {
					return nil, err
				}
				points = append(points, point)
			}
			return points, nil
		case []interface{}:
			points := make([]CurvePoint, 0, len(v))
			for idx, entry := range v {
				fields, ok := toStringMap(entry)
				if !ok {
					return nil, fmt.Errorf("curve: point %d must have a 'temp' and a 'speed'", idx+1)
				}
				temp, hasTemp := fields["temp"]
				speed, hasSpeed := fields["speed"]
				if !hasTemp || !hasSpeed {
					return nil, fmt.Errorf("curve: point %d must have a 'temp' and a 'speed'", idx+1)
				}
				point, err := parseCurvePoint(temp, speed)
				if err != nil {
					return nil, err
				}
				points = append(points, point)
			}
			return points, nil
		}

		return data, nil
	}
}

func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		result := make(map[string]interface{}, len(m))
		for k, val := range m {
			result[fmt.Sprintf("%v", k)] = val
		}
		return result, true
	}
	return nil, false
}

func parseCurvePoint(key interface{}, value interface{}) (CurvePoint, error) {
	temp, err := anyToFloat(key)
	if err != nil {
		return CurvePoint{}, fmt.Errorf("curve: invalid temperature %v: %w", key, err)
	}
	speed, err := anyToFloat(value)
	if err != nil {
		return CurvePoint{}, fmt.Errorf("curve: invalid speed %v at %v°C: %w", value, key, err)
	}
	if speed != math.Trunc(speed) {
		return CurvePoint{}, fmt.Errorf("curve: invalid speed %v at %v°C: must be a whole number", value, key)
	}
	return CurvePoint{Temp: temp, Speed: int(speed)}, nil
}

// anyToFloat converts numeric and string values to float64.
func anyToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case float32:
		return float64(val), nil
	case float64:
		return val, nil
	case string:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number", val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to number", v)
	}
}
