package statistics

import (
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

type ControllerCollector struct {
	loop controller.ControlLoop

	cycles             *prometheus.Desc
	skippedCycles      *prometheus.Desc
	actuationFailures  *prometheus.Desc
	avgCycleDuration   *prometheus.Desc
	maxCycleDuration   *prometheus.Desc
	lastCycleTimestamp *prometheus.Desc
}

func NewControllerCollector(loop controller.ControlLoop) *ControllerCollector {
	return &ControllerCollector{
		loop: loop,
		cycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycles_total"),
			"Number of control cycles executed",
			nil, nil,
		),
		skippedCycles: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "skipped_cycles_total"),
			"Number of control cycles that were skipped because no valid sensor reading was available",
			nil, nil,
		),
		actuationFailures: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "actuation_failures_total"),
			"Number of fan speed commands that failed",
			nil, nil,
		),
		avgCycleDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycle_duration_seconds"),
			"Rolling average of the duration of a control cycle",
			nil, nil,
		),
		maxCycleDuration: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cycle_duration_max_seconds"),
			"Longest duration of the recent control cycles",
			nil, nil,
		),
		lastCycleTimestamp: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "last_cycle_timestamp_seconds"),
			"Unix timestamp of the last control cycle",
			nil, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.cycles
	ch <- collector.skippedCycles
	ch <- collector.actuationFailures
	ch <- collector.avgCycleDuration
	ch <- collector.maxCycleDuration
	ch <- collector.lastCycleTimestamp
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := collector.loop.GetStatistics()
	ch <- prometheus.MustNewConstMetric(collector.cycles, prometheus.CounterValue, float64(stats.Cycles))
	ch <- prometheus.MustNewConstMetric(collector.skippedCycles, prometheus.CounterValue, float64(stats.SkippedCycles))
	ch <- prometheus.MustNewConstMetric(collector.actuationFailures, prometheus.CounterValue, float64(stats.ActuationFailures))
	ch <- prometheus.MustNewConstMetric(collector.avgCycleDuration, prometheus.GaugeValue, stats.AvgCycleDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(collector.maxCycleDuration, prometheus.GaugeValue, stats.MaxCycleDuration.Seconds())
	if !stats.LastCycle.IsZero() {
		ch <- prometheus.MustNewConstMetric(collector.lastCycleTimestamp, prometheus.GaugeValue, float64(stats.LastCycle.Unix()))
	}
}
