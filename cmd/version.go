package cmd

import (
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of fan2ipmi",
	Long:  `All software has versions. This is fan2ipmi's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Println(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
