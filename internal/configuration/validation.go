package configuration

import (
	"strings"

	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/markusressel/fan2ipmi/internal/util"
	"golang.org/x/exp/slices"
)

// Validate checks the given configuration for consistency, without touching any hardware.
// If configPath is not empty, the config file itself must be safe to be used,
// since it defines the commands that are executed by fan2ipmi.
func Validate(config *Configuration, configPath string) error {
	if config.Interval <= 0 {
		return newConfigurationError("interval must be > 0, got %s", config.Interval)
	}

	err := validateCurve(config)
	if err != nil {
		return err
	}
	err = validateSensors(config)
	if err != nil {
		return err
	}
	err = validateFans(config)
	if err != nil {
		return err
	}
	err = ValidateFanSensors(config)
	if err != nil {
		return err
	}
	err = validateReader(config)
	if err != nil {
		return err
	}
	err = validateActuator(config)
	if err != nil {
		return err
	}

	if len(configPath) > 0 {
		if _, err := util.CheckFilePermissionsForExecution(configPath); err != nil {
			return newConfigurationError("config file '%s' has invalid permissions: %s", configPath, err)
		}
	}

	return nil
}

// ValidateFanSensors checks that every sensor referenced by a fan is defined in the sensor mapping
func ValidateFanSensors(config *Configuration) error {
	for _, fanConfig := range config.Fans {
		for _, sensorId := range fanConfig.Sensors {
			if !sensorIdExists(sensorId, config) {
				return &ConfigurationError{
					Fan:    fanConfig.ID,
					Sensor: sensorId,
					Reason: "no sensor definition with this id found, check the 'fans' and 'sensors' sections",
				}
			}
		}
	}
	return nil
}

func validateCurve(config *Configuration) error {
	if len(config.Curve) <= 0 {
		return newConfigurationError("curve: at least one control point is required")
	}

	var temps []float64
	for _, point := range config.Curve {
		if slices.Contains(temps, point.Temp) {
			return newConfigurationError("curve: duplicate control point for temperature %v°C", point.Temp)
		}
		temps = append(temps, point.Temp)
	}

	return nil
}

func validateSensors(config *Configuration) error {
	var ids []string
	for _, sensorConfig := range config.Sensors {
		if len(sensorConfig.ID) <= 0 {
			return newConfigurationError("sensor with path '%s' is missing an id", sensorConfig.Path())
		}
		if slices.Contains(ids, sensorConfig.ID) {
			return &ConfigurationError{Sensor: sensorConfig.ID, Reason: "duplicate sensor id"}
		}
		ids = append(ids, sensorConfig.ID)

		if len(sensorConfig.Chip) <= 0 {
			return &ConfigurationError{Sensor: sensorConfig.ID, Reason: "chip is missing"}
		}
		if len(sensorConfig.Group) <= 0 {
			return &ConfigurationError{Sensor: sensorConfig.ID, Reason: "group is missing"}
		}
		if len(sensorConfig.Field) <= 0 {
			return &ConfigurationError{Sensor: sensorConfig.ID, Reason: "field is missing"}
		}

		if !isSensorConfigInUse(sensorConfig, config.Fans) {
			ui.Warning("Unused sensor configuration: %s", sensorConfig.ID)
		}
	}

	return nil
}

func isSensorConfigInUse(config SensorConfig, fans []FanConfig) bool {
	for _, fanConfig := range fans {
		if util.ContainsString(fanConfig.Sensors, config.ID) {
			return true
		}
	}
	return false
}

func validateFans(config *Configuration) error {
	if len(config.Fans) <= 0 {
		return newConfigurationError("no fans configured")
	}

	var ids []int
	for _, fanConfig := range config.Fans {
		if fanConfig.ID <= 0 {
			return newConfigurationError("invalid fan id %d, must be >= 1", fanConfig.ID)
		}
		if slices.Contains(ids, fanConfig.ID) {
			return newConfigurationError("duplicate fan id detected: %d", fanConfig.ID)
		}
		ids = append(ids, fanConfig.ID)

		if len(fanConfig.Sensors) <= 0 {
			return &ConfigurationError{Fan: fanConfig.ID, Reason: "no sensors configured"}
		}
	}

	return nil
}

func validateReader(config *Configuration) error {
	reader := config.Reader
	supportedTypes := []string{ReaderTypeCmd, ReaderTypeLibSensors}
	if !slices.Contains(supportedTypes, reader.Type) {
		return newConfigurationError("reader: unsupported type '%s', use one of: %s", reader.Type, strings.Join(supportedTypes, " | "))
	}

	if reader.Type == ReaderTypeCmd {
		if len(reader.Exec) <= 0 {
			return newConfigurationError("reader: executable is missing")
		}
		if reader.Timeout <= 0 {
			return newConfigurationError("reader: timeout must be > 0")
		}
	}

	return nil
}

func validateActuator(config *Configuration) error {
	actuator := config.Actuator
	if len(actuator.Exec) <= 0 {
		return newConfigurationError("actuator: executable is missing")
	}
	if actuator.Timeout <= 0 {
		return newConfigurationError("actuator: timeout must be > 0")
	}

	supportedFormats := []string{ArgFormatHex, ArgFormatDecimal}
	if !slices.Contains(supportedFormats, actuator.ArgFormat) {
		return newConfigurationError("actuator: unsupported argFormat '%s', use one of: %s", actuator.ArgFormat, strings.Join(supportedFormats, " | "))
	}

	if !containsPlaceholder(actuator.Args, PlaceholderSpeed) {
		return newConfigurationError("actuator: args must contain the %s placeholder", PlaceholderSpeed)
	}
	if !containsPlaceholder(actuator.Args, PlaceholderFan) {
		ui.Warning("actuator: args do not contain the %s placeholder, all fans will receive the same command", PlaceholderFan)
	}

	return nil
}

func containsPlaceholder(args []string, placeholder string) bool {
	for _, arg := range args {
		if strings.Contains(arg, placeholder) {
			return true
		}
	}
	return false
}

func sensorIdExists(sensorId string, config *Configuration) bool {
	for _, sensor := range config.Sensors {
		if sensor.ID == sensorId {
			return true
		}
	}

	return false
}
