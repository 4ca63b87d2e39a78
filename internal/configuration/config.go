package configuration

import (
	"os"
	"time"

	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	ConfigName = "fan2ipmi"
)

type Configuration struct {
	// Interval is the time to wait between two control cycles
	Interval time.Duration `json:"interval"`

	Sensors []SensorConfig `json:"sensors"`
	Fans    []FanConfig    `json:"fans"`
	Curve   []CurvePoint   `json:"curve"`

	Reader   ReaderConfig   `json:"reader"`
	Actuator ActuatorConfig `json:"actuator"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	Profiling  ProfilingConfig  `json:"profiling"`
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName(ConfigName)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/fan2ipmi/")
	}

	viper.SetEnvPrefix(ConfigName)
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("interval", 5*time.Second)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("fans", []FanConfig{})
	viper.SetDefault("curve", []CurvePoint{})

	viper.SetDefault("reader.type", ReaderTypeCmd)
	viper.SetDefault("reader.exec", "sensors")
	viper.SetDefault("reader.args", []string{"-j"})
	viper.SetDefault("reader.timeout", 5*time.Second)

	viper.SetDefault("actuator.exec", "ipmitool")
	viper.SetDefault("actuator.args", DefaultActuatorArgs)
	viper.SetDefault("actuator.argFormat", ArgFormatHex)
	viper.SetDefault("actuator.timeout", 2*time.Second)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("profiling.enabled", false)
	viper.SetDefault("profiling.host", "localhost")
	viper.SetDefault("profiling.port", 6060)
}

// DetectAndReadConfigFile detects the path of the first existing config file and reads it
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

// LoadConfig decodes the values currently known to viper into a new Configuration.
// The result is meant to be treated as read-only for the lifetime of the process.
func LoadConfig() (*Configuration, error) {
	config := &Configuration{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			curvePointsHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           config,
	})
	if err != nil {
		return nil, err
	}

	settings := viper.AllSettings()
	// AllSettings splits keys on ".", which would break fractional temperatures in the map form of the curve
	settings["curve"] = viper.Get("curve")

	err = decoder.Decode(settings)
	if err != nil {
		return nil, err
	}
	return config, nil
}
