package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"method", "route"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signups_total",
			Help: "Total signup attempts by outcome",
		},
		[]string{"outcome"},
	)

	UnregistersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_unregisters_total",
			Help: "Total unregister attempts by outcome",
		},
		[]string{"outcome"},
	)
)
