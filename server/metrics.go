package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// MustRegisterMetrics will register all server metrics on the given registry.
// If metrics with the same name already exist on the registry this function will panic.
func MustRegisterMetrics(registry *prometheus.Registry) {
	registry.MustRegister(requestsCounter)
}

func sampleRequest(handler string, status int) {
	requestsCounter.With(prometheus.Labels{
		"handler": handler,
		"status":  strconv.Itoa(status),
	}).Inc()
}

var (
	requestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total of handled HTTP requests by handler and status",
		},
		[]string{"handler", "status"},
	)
)
