package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "luxclock"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
