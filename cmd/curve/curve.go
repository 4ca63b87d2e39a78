package curve

import (
	"bytes"
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/fan2ipmi/cmd/global"
	"github.com/markusressel/fan2ipmi/internal/curves"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/markusressel/fan2ipmi/internal/util"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

// temperature range shown in the graph, in addition to the range of the control points
const graphMargin = 5

var temp float64

var Command = &cobra.Command{
	Use:   "curve",
	Short: "Print the configured speed curve to console",
	Long: `Prints the control points of the configured speed curve and a graph of
the resulting speed for each temperature. Use --temp to evaluate the curve.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, _, err := global.LoadConfig()
		if err != nil {
			return err
		}

		curve, err := curves.NewSpeedCurve(config.Curve)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("temp") {
			ui.Printfln("%.1f°C → %d%%", temp, curve.Evaluate(temp))
			return nil
		}

		printPointTable(curve)
		printGraph(curve)
		return nil
	},
}

func init() {
	Command.Flags().Float64VarP(&temp, "temp", "t", 0, "Only print the speed for the given temperature in °C")
}

func printPointTable(curve *curves.SpeedCurve) {
	var rows [][]string
	for _, point := range curve.Points() {
		rows = append(rows, []string{fmt.Sprintf("%g", point.Temp), fmt.Sprintf("%d", point.Speed)})
	}

	tab := table.Table{
		Headers: []string{"Temperature (°C)", "Speed (%)"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
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
	ui.Println(buf.String())
}

func printGraph(curve *curves.SpeedCurve) {
	points := curve.Points()
	start := int(math.Floor(points[0].Temp)) - graphMargin
	stop := int(math.Ceil(points[len(points)-1].Temp)) + graphMargin

	graphValues := curve.Interpolate(start, stop)
	values := make([]float64, 0, len(graphValues))
	for _, k := range util.SortedKeys(graphValues) {
		values = append(values, float64(graphValues[k]))
	}

	caption := fmt.Sprintf("Speed (%%) / Temperature (%d..%d°C)", start, stop)
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Println(graph)
}
