package statistics

import (
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemSensor = "sensor"

type SensorCollector struct {
	loop  controller.ControlLoop
	value *prometheus.Desc
}

func NewSensorCollector(loop controller.ControlLoop) *SensorCollector {
	return &SensorCollector{
		loop: loop,
		value: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "value"),
			"Last temperature reading of the sensor in °C",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.value
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for sensorId, value := range collector.loop.GetSample() {
		ch <- prometheus.MustNewConstMetric(collector.value, prometheus.GaugeValue, value, sensorId)
	}
}
