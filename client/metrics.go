package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mqconf_resolutions_total",
		Help: "Total number of successful configuration resolutions",
	}, []string{"backend", "kind"})

	resolutionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mqconf_resolution_errors_total",
		Help: "Total number of failed configuration resolutions",
	}, []string{"backend", "kind"})
)
