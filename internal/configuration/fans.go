package configuration

import "time"

type FanConfig struct {
	// ID is the identifier of the fan as understood by the actuator command
	ID int `json:"id"`
	// Sensors is the list of logical sensor names this fan reacts to,
	// the hottest one determines the speed
	Sensors []string `json:"sensors"`
}

const (
	PlaceholderFan   = "%fan%"
	PlaceholderSpeed = "%speed%"

	ArgFormatHex     = "hex"
	ArgFormatDecimal = "decimal"
)

// DefaultActuatorArgs sets the duty cycle of a single fan zone on Supermicro style BMCs
var DefaultActuatorArgs = []string{"raw", "0x3c", "0x30", "0x00", PlaceholderFan, PlaceholderSpeed}

type ActuatorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
	// ArgFormat controls how %fan% and %speed% are rendered: hex ("0x05") or decimal ("5")
	ArgFormat string        `json:"argFormat"`
	Timeout   time.Duration `json:"timeout"`
}
