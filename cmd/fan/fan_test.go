package fan

import (
	"testing"

	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func TestGetFanConfig(t *testing.T) {
	// GIVEN
	fanConfigs := []configuration.FanConfig{
		{ID: 1, Sensors: []string{"gpu0"}},
		{ID: 3, Sensors: []string{"cpu"}},
	}

	// WHEN
	fanConfig, err := getFanConfig(3, fanConfigs)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"cpu"}, fanConfig.Sensors)
}

func TestGetFanConfig_NotFound(t *testing.T) {
	// GIVEN
	fanConfigs := []configuration.FanConfig{
		{ID: 1, Sensors: []string{"gpu0"}},
	}

	// WHEN
	fanConfig, err := getFanConfig(2, fanConfigs)

	// THEN
	assert.Nil(t, fanConfig)
	assert.EqualError(t, err, "no fan with id found: 2, options: [1]")
}
