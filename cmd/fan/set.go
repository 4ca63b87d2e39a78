package fan

import (
	"strconv"

	"github.com/markusressel/fan2ipmi/cmd/global"
	"github.com/markusressel/fan2ipmi/internal/fans"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <percent>",
	Short: "Set the speed of a fan to the given percentage ([0..100])",
	Long: `Sets the speed of a single fan once, using the configured actuator.
The value is kept until the next control cycle of a running daemon overwrites it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}

		config, _, err := global.LoadConfig()
		if err != nil {
			return err
		}

		fanConfig, err := getFanConfig(fanId, config.Fans)
		if err != nil {
			return err
		}

		actuator, err := fans.NewActuator(config.Actuator)
		if err != nil {
			return err
		}

		err = actuator.SetSpeed(cmd.Context(), fanConfig.ID, speed)
		if err != nil {
			return err
		}

		ui.Success("Fan %d → %d%%", fanConfig.ID, speed)
		return nil
	},
}

func init() {
	Command.AddCommand(setCmd)
}
