package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/markusressel/fan2ipmi/cmd/config"
	"github.com/markusressel/fan2ipmi/cmd/curve"
	"github.com/markusressel/fan2ipmi/cmd/fan"
	"github.com/markusressel/fan2ipmi/cmd/global"
	"github.com/markusressel/fan2ipmi/cmd/sensor"
	"github.com/markusressel/fan2ipmi/internal"
	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fan2ipmi",
	Short: "A daemon to control server fans over IPMI.",
	Long: `fan2ipmi is a simple daemon that sets the speed of the fans
of a server based on its temperature sensors and a speed curve.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupUi()
	},
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		printHeader()

		config, _, err := global.LoadConfig()
		if err != nil {
			ui.FatalWithoutStacktrace("Config Validation Error: %v", err)
		}

		err = internal.RunDaemon(cmd.Context(), config)
		if errors.Is(err, configuration.ErrConfiguration) {
			ui.Error("Configuration does not match the current sensor readings: %v", err)
			ui.Error("Please check the configuration file, no fan speed has been changed.")
			os.Exit(1)
		} else if err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is ./fan2ipmi.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(curve.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("fan", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("2", pterm.NewStyle(pterm.FgWhite)),
		pterm.NewLettersFromStringWithStyle("ipmi", pterm.NewStyle(pterm.FgLightBlue)),
	).Render()
	if err != nil {
		fmt.Println("fan2ipmi")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
