package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry exposed on /metrics.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// ProviderRequests counts geocoding/routing provider calls by outcome.
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "location_provider_requests_total", Help: "External geocoding and routing calls."},
		[]string{"provider", "operation", "status"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "location_cache_lookups_total", Help: "Result cache lookups by outcome."},
		[]string{"result"},
	)
	// Degraded counts results produced by a fail-open path.
	Degraded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "location_degraded_total", Help: "Degraded location results by operation and reason."},
		[]string{"operation", "reason"},
	)
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "location_operation_duration_seconds", Help: "Duration of timed location operations.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(
			HTTPRequests,
			HTTPDuration,
			ProviderRequests,
			CacheLookups,
			Degraded,
			OperationDuration,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
