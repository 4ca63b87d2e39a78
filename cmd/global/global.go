package global

import (
	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfig reads, parses and validates the configuration file.
// Returns the parsed configuration and the path it was read from.
func LoadConfig() (*configuration.Configuration, string, error) {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)

	config, err := configuration.LoadConfig()
	if err != nil {
		return nil, configPath, err
	}

	err = configuration.Validate(config, configPath)
	if err != nil {
		return nil, configPath, err
	}

	return config, configPath, nil
}
