package controller

import (
	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/sensors"
)

// ValidateSample checks that every sensor tracked by a fan is present in the given sample
func ValidateSample(config *configuration.Configuration, sample sensors.Sample) error {
	for _, fanConfig := range config.Fans {
		for _, sensorId := range fanConfig.Sensors {
			if _, ok := sample[sensorId]; !ok {
				return &configuration.ConfigurationError{
					Fan:    fanConfig.ID,
					Sensor: sensorId,
					Reason: "no reading available, check the hardware connection and configuration",
				}
			}
		}
	}
	return nil
}
