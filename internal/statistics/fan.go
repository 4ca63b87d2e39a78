package statistics

import (
	"strconv"

	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const fanSubsystem = "fan"

type FanCollector struct {
	loop  controller.ControlLoop
	speed *prometheus.Desc
	temp  *prometheus.Desc
	ok    *prometheus.Desc
}

func NewFanCollector(loop controller.ControlLoop) *FanCollector {
	return &FanCollector{
		loop: loop,
		speed: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "speed_percent"),
			"Last speed percentage successfully applied to the fan",
			[]string{"id"}, nil,
		),
		temp: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "temperature_celsius"),
			"Highest temperature of all sensors tracked by the fan",
			[]string{"id"}, nil,
		),
		ok: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "last_update_ok"),
			"1 if the last speed command for the fan succeeded, 0 otherwise",
			[]string{"id"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.speed
	ch <- collector.temp
	ch <- collector.ok
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	for fanId, state := range collector.loop.GetFanStates() {
		id := strconv.Itoa(fanId)
		ok := 1.0
		if state.Error != "" {
			ok = 0
		}
		ch <- prometheus.MustNewConstMetric(collector.speed, prometheus.GaugeValue, float64(state.Speed), id)
		ch <- prometheus.MustNewConstMetric(collector.temp, prometheus.GaugeValue, state.Temperature, id)
		ch <- prometheus.MustNewConstMetric(collector.ok, prometheus.GaugeValue, ok, id)
	}
}
