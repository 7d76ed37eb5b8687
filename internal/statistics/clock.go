package statistics

import (
	"github.com/luxclock/luxclock/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystemDisplay   = "display"
	subsystemTelemetry = "telemetry"
)

type ClockCollector struct {
	displayErrors   *prometheus.Desc
	telemetryStatus *prometheus.Desc
}

func NewClockCollector() *ClockCollector {
	return &ClockCollector{
		displayErrors: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDisplay, "errors_total"),
			"Number of failed display updates",
			[]string{"id"}, nil,
		),
		telemetryStatus: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemTelemetry, "status"),
			"Broker connection status of the last publish (0 failed, 1 connected, 2 reconnected, 3 sensor restart)",
			[]string{"id"}, nil,
		),
	}
}

func (collector *ClockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.displayErrors
	ch <- collector.telemetryStatus
}

// Collect implements required collect function for all prometheus collectors
func (collector *ClockCollector) Collect(ch chan<- prometheus.Metric) {
	for id, snapshot := range status.SnapshotMap.Items() {
		ch <- prometheus.MustNewConstMetric(collector.displayErrors, prometheus.CounterValue, float64(snapshot.DisplayErrors), id)
		ch <- prometheus.MustNewConstMetric(collector.telemetryStatus, prometheus.GaugeValue, float64(snapshot.Telemetry), id)
	}
}
