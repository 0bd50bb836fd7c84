// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversion outcomes used as the "outcome" label.
const (
	OutcomeOK         = "ok"
	OutcomeParseError = "parse_error"
	OutcomeInvalidURL = "invalid_url"
	OutcomeTooLarge   = "too_large"
	OutcomeError      = "error"
)

type metrics struct {
	conversions *prometheus.CounterVec
	duration    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		conversions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "html2md",
			Name:      "conversions_total",
			Help:      "Total number of conversion requests by outcome",
		}, []string{"outcome"}),

		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "html2md",
			Name:      "conversion_duration_seconds",
			Help:      "Conversion request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
