// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weather_reporter"

var (
	// ReportsGenerated counts report batches that completed formatting,
	// narration, and rendering for every requested location.
	ReportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of report batches generated successfully",
	})

	// ReportsFailed counts report batches aborted by a pipeline error.
	ReportsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_failed_total",
		Help:      "Total number of report batches aborted before dispatch",
	})

	// EmailsSent counts successful dispatches to the email provider.
	EmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Total number of report emails accepted by the provider",
	})

	// EmailsFailed counts dispatch attempts the email provider rejected.
	// Delivery failures are logged and swallowed, so this counter is the
	// only place they surface besides the logs.
	EmailsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_failed_total",
		Help:      "Total number of report emails rejected by the provider",
	})
)
