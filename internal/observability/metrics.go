package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report intake and verification pipeline.
type Metrics struct {
	ReportsSubmitted     *prometheus.CounterVec // labels: event_type
	VerificationOutcomes *prometheus.CounterVec // labels: status={unverified,pending,verified}
	NearbyReports        prometheus.Histogram

	// Alert dispatch metrics.
	AlertsSent    prometheus.Counter
	AlertFailures prometheus.Counter

	// Stream publishing metrics.
	EventsPublished prometheus.Counter

	// HTTP metrics.
	RequestDuration *prometheus.HistogramVec // labels: route, method, status
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReportsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_watch",
			Name:      "reports_submitted_total",
			Help:      "Total community reports accepted at intake.",
		}, []string{"event_type"}),
		VerificationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_watch",
			Name:      "verification_outcomes_total",
			Help:      "Verification passes by resulting status.",
		}, []string{"status"}),
		NearbyReports: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_watch",
			Name:      "verification_nearby_reports",
			Help:      "Corroborating report count observed per verification pass.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}),
		AlertsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_watch",
			Name:      "alerts_sent_total",
			Help:      "Total SMS alert recipients across all dispatches.",
		}),
		AlertFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_watch",
			Name:      "alert_failures_total",
			Help:      "Alert dispatch attempts that failed.",
		}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_watch",
			Name:      "verified_events_published_total",
			Help:      "Verified reports published to the event stream.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_watch",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route, method, and status.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method", "status"}),
	}

	prometheus.MustRegister(
		m.ReportsSubmitted,
		m.VerificationOutcomes,
		m.NearbyReports,
		m.AlertsSent,
		m.AlertFailures,
		m.EventsPublished,
		m.RequestDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReportsSubmitted:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_watch", Name: "reports_submitted_total"}, []string{"event_type"}),
		VerificationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_watch", Name: "verification_outcomes_total"}, []string{"status"}),
		NearbyReports:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_watch", Name: "verification_nearby_reports"}),
		AlertsSent:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_watch", Name: "alerts_sent_total"}),
		AlertFailures:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_watch", Name: "alert_failures_total"}),
		EventsPublished:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "climate_watch", Name: "verified_events_published_total"}),
		RequestDuration:      prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "climate_watch", Name: "http_request_duration_seconds"}, []string{"route", "method", "status"}),
	}
}
