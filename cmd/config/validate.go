package config

import (
	"os"

	"github.com/markusressel/fan2ipmi/cmd/global"
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/markusressel/fan2ipmi/internal/fans"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/spf13/cobra"
)

var offline bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validates the current configuration",
	Long: `Validates the current configuration file and checks that every sensor
used by a fan can be found in the current sensor readings.
No fan speed is changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// note: config file path parameter comes from the root command (-c)
		config, _, err := global.LoadConfig()
		if err != nil {
			ui.Error("Validation failed: %v", err)
			os.Exit(1)
		}

		if !offline {
			reader, err := sensors.NewReader(config.Reader)
			if err != nil {
				return err
			}
			actuator, err := fans.NewActuator(config.Actuator)
			if err != nil {
				return err
			}
			loop, err := controller.NewFanControlLoop(config, reader, actuator)
			if err != nil {
				return err
			}

			if err := loop.Validate(cmd.Context()); err != nil {
				ui.Error("Validation against current sensor readings failed: %v", err)
				os.Exit(1)
			}
		}

		ui.Success("Config looks good! :)")
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&offline, "offline", false, "Only validate the configuration file, without reading any sensor")
	Command.AddCommand(validateCmd)
}
