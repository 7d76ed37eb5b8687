package statistics

import (
	"github.com/luxclock/luxclock/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const subsystemDimming = "dimming"

type DimmingCollector struct {
	level     *prometheus.Desc
	direction *prometheus.Desc
}

func NewDimmingCollector() *DimmingCollector {
	return &DimmingCollector{
		level: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDimming, "level"),
			"Current brightness level of the display (0..15)",
			[]string{"id", "mode"}, nil,
		),
		direction: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemDimming, "direction"),
			"Direction of the last brightness change, -1 decreasing, 0 steady, 1 increasing",
			[]string{"id", "mode"}, nil,
		),
	}
}

func (collector *DimmingCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.level
	ch <- collector.direction
}

// Collect implements required collect function for all prometheus collectors
func (collector *DimmingCollector) Collect(ch chan<- prometheus.Metric) {
	for id, snapshot := range status.SnapshotMap.Items() {
		ch <- prometheus.MustNewConstMetric(collector.level, prometheus.GaugeValue, float64(snapshot.Dimming.Level), id, snapshot.Mode)
		ch <- prometheus.MustNewConstMetric(collector.direction, prometheus.GaugeValue, float64(snapshot.Dimming.Direction), id, snapshot.Mode)
	}
}
