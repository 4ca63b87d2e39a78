package sensor

import (
	"bytes"
	"fmt"

	"github.com/markusressel/fan2ipmi/cmd/global"
	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var sensorId string

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Print the current value of all configured sensors",
	Long: `Reads all sensors once and prints the temperature of every configured sensor.
Use -i to only print the value of a single sensor.`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sensorId != "" {
			pterm.DisableOutput()
		}

		config, _, err := global.LoadConfig()
		if err != nil {
			return err
		}

		reader, err := sensors.NewReader(config.Reader)
		if err != nil {
			return err
		}
		snapshot, err := reader.Read(cmd.Context())
		if err != nil {
			return err
		}

		if sensorId != "" {
			sensorConfig, err := getSensorConfig(sensorId, config.Sensors)
			if err != nil {
				return err
			}
			sample, err := sensors.Extract(snapshot, []configuration.SensorConfig{*sensorConfig})
			if err != nil {
				return err
			}
			fmt.Printf("%.1f\n", sample[sensorId])
			return nil
		}

		ui.Println(renderSensorTable(snapshot, config.Sensors, !global.NoColor))
		return nil
	},
}

func init() {
	Command.PersistentFlags().StringVarP(
		&sensorId,
		"id", "i",
		"",
		"Sensor ID as specified in the config",
	)
}

func getSensorConfig(id string, sensorConfigs []configuration.SensorConfig) (*configuration.SensorConfig, error) {
	availableSensorIds := []string{}
	for _, sensorConfig := range sensorConfigs {
		availableSensorIds = append(availableSensorIds, sensorConfig.ID)
		if sensorConfig.ID == id {
			return &sensorConfig, nil
		}
	}

	return nil, fmt.Errorf("no sensor with id found: %s, options: %s", id, availableSensorIds)
}

// renderSensorTable renders one row per configured sensor, sensors that cannot be
// extracted from the snapshot show the reason instead of a value
func renderSensorTable(snapshot sensors.Snapshot, sensorConfigs []configuration.SensorConfig, color bool) string {
	var rows [][]string
	for _, sensorConfig := range sensorConfigs {
		value := ""
		sample, err := sensors.Extract(snapshot, []configuration.SensorConfig{sensorConfig})
		if err != nil {
			value = err.Error()
		} else {
			value = fmt.Sprintf("%.1f°C", sample[sensorConfig.ID])
		}
		rows = append(rows, []string{sensorConfig.ID, sensorConfig.Path(), value})
	}

	tab := table.Table{
		Headers: []string{"ID", "Path", "Value"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if tableErr != nil {
		panic(tableErr)
	}
	return buf.String()
}
