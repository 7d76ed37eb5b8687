package statistics

import (
	"github.com/luxclock/luxclock/internal/status"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystemSensor = "sensor"
	subsystemLux    = "lux"
)

type SensorCollector struct {
	smoothed  *prometheus.Desc
	windowMin *prometheus.Desc
	windowMax *prometheus.Desc
	windowAvg *prometheus.Desc
	ir        *prometheus.Desc
	broadband *prometheus.Desc
	failures  *prometheus.Desc
	restarts  *prometheus.Desc
}

func NewSensorCollector() *SensorCollector {
	return &SensorCollector{
		smoothed: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLux, "smoothed"),
			"Exponentially smoothed ambient light in lux",
			[]string{"id"}, nil,
		),
		windowMin: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLux, "window_min"),
			"Lowest raw lux reading of the recent window",
			[]string{"id"}, nil,
		),
		windowMax: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLux, "window_max"),
			"Highest raw lux reading of the recent window",
			[]string{"id"}, nil,
		),
		windowAvg: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemLux, "window_avg"),
			"Average raw lux reading of the recent window",
			[]string{"id"}, nil,
		),
		ir: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "ir"),
			"Raw infrared count of the last reading, negative on read failure",
			[]string{"id"}, nil,
		),
		broadband: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "broadband"),
			"Raw broadband count of the last reading, negative on read failure",
			[]string{"id"}, nil,
		),
		failures: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "failures"),
			"Number of consecutive bad readings",
			[]string{"id"}, nil,
		),
		restarts: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemSensor, "restarts_total"),
			"Number of sensor power cycles since start",
			[]string{"id"}, nil,
		),
	}
}

func (collector *SensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.smoothed
	ch <- collector.windowMin
	ch <- collector.windowMax
	ch <- collector.windowAvg
	ch <- collector.ir
	ch <- collector.broadband
	ch <- collector.failures
	ch <- collector.restarts
}

// Collect implements required collect function for all prometheus collectors
func (collector *SensorCollector) Collect(ch chan<- prometheus.Metric) {
	for id, snapshot := range status.SnapshotMap.Items() {
		if snapshot.Mode != status.ModeLux {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.smoothed, prometheus.GaugeValue, snapshot.SmoothedLux, id)
		ch <- prometheus.MustNewConstMetric(collector.windowMin, prometheus.GaugeValue, snapshot.LuxWindowMin, id)
		ch <- prometheus.MustNewConstMetric(collector.windowMax, prometheus.GaugeValue, snapshot.LuxWindowMax, id)
		ch <- prometheus.MustNewConstMetric(collector.windowAvg, prometheus.GaugeValue, snapshot.LuxWindowAvg, id)
		ch <- prometheus.MustNewConstMetric(collector.ir, prometheus.GaugeValue, float64(snapshot.Reading.IR), id)
		ch <- prometheus.MustNewConstMetric(collector.broadband, prometheus.GaugeValue, float64(snapshot.Reading.Broadband), id)
		ch <- prometheus.MustNewConstMetric(collector.failures, prometheus.GaugeValue, float64(snapshot.SensorFailures), id)
		ch <- prometheus.MustNewConstMetric(collector.restarts, prometheus.CounterValue, float64(snapshot.SensorRestarts), id)
	}
}
