package xtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MustRegisterMetrics will register all time parsing metrics on the given registry.
// If metrics with the same name already exist on the registry this function will panic.
func MustRegisterMetrics(registry *prometheus.Registry) {
	registry.MustRegister(parseCounter)
}

func sampleParse(shape string, d Datetime) {
	result := "ok"
	if d.IsEmpty() {
		result = "empty"
	}
	parseCounter.With(prometheus.Labels{
		"shape":  shape,
		"result": result,
	}).Inc()
}

var (
	parseCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xtime_parse_total",
			Help: "Total of parsed times of day by input shape",
		},
		[]string{"shape", "result"},
	)
)
