package config

import (
	"fmt"
	"os"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/markusressel/fan2ipmi/internal/util"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "./" + configuration.ConfigName + ".yaml"

var force bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Writes an example configuration file",
	Long:  `Writes an example configuration file to the given path (default: ` + defaultConfigPath + `)`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("file already exists: %s, use --force to overwrite it", path)
		}

		err := util.WriteFileAtomic(path, []byte(configuration.ExampleConfig))
		if err != nil {
			return err
		}

		ui.Success("Example configuration written to %s", path)
		ui.Info("Adjust the 'sensors' section to the output of 'sensors -j' on this machine before starting fan2ipmi.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}
