package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	httpErrorsTotal        *prometheus.CounterVec
	mentorConnectionsTotal prometheus.Counter
	mentorMessagesSent     *prometheus.CounterVec
	scanLatencySeconds     prometheus.Histogram
	scanRejectedTotal      *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindstep_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mindstep_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindstep_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		mentorConnectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mindstep_mentor_connections_total",
			Help: "Total number of mentor websocket connections accepted.",
		})

		mentorMessagesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindstep_mentor_messages_total",
			Help: "Total number of mentor messages delivered, by role.",
		}, []string{"role"})

		scanLatencySeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mindstep_scan_latency_seconds",
			Help:    "Latency distribution for marksheet scan processing.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		})

		scanRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mindstep_scan_rejected_total",
			Help: "Total number of rejected scan uploads, by reason.",
		}, []string{"reason"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			mentorConnectionsTotal,
			mentorMessagesSent,
			scanLatencySeconds,
			scanRejectedTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// MentorConnectionsTotal exposes the mentor websocket connection counter.
func MentorConnectionsTotal() prometheus.Counter {
	RegisterMetrics()
	return mentorConnectionsTotal
}

// MentorMessagesSent exposes the mentor message counter.
func MentorMessagesSent() *prometheus.CounterVec {
	RegisterMetrics()
	return mentorMessagesSent
}

// ScanLatency exposes the scan processing histogram.
func ScanLatency() prometheus.Histogram {
	RegisterMetrics()
	return scanLatencySeconds
}

// ScanRejected exposes the rejected scan counter.
func ScanRejected() *prometheus.CounterVec {
	RegisterMetrics()
	return scanRejectedTotal
}
