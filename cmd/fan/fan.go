package fan

import (
	"fmt"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/spf13/cobra"
)

var fanId int

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().IntVarP(
		&fanId,
		"id", "i",
		0,
		"Fan ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func getFanConfig(id int, fanConfigs []configuration.FanConfig) (*configuration.FanConfig, error) {
	availableFanIds := []int{}
	for _, fanConfig := range fanConfigs {
		availableFanIds = append(availableFanIds, fanConfig.ID)
		if fanConfig.ID == id {
			return &fanConfig, nil
		}
	}

	return nil, fmt.Errorf("no fan with id found: %d, options: %v", id, availableFanIds)
}
