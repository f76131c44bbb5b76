package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry is the dedicated Prometheus registry for the service
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts inbound requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records inbound request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path"},
	)

	// VendorRequests counts calls to the vendor API by endpoint and outcome
	VendorRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vendor_requests_total", Help: "Vendor API requests by endpoint and outcome."},
		[]string{"endpoint", "outcome"},
	)
	// VendorDuration tracks vendor API latency in seconds
	VendorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "vendor_request_duration_seconds", Help: "Vendor API request duration in seconds.", Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30}},
		[]string{"endpoint"},
	)

	// ReportBuilds counts report page builds by final state
	ReportBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "report_builds_total", Help: "Report builds by report and final state."},
		[]string{"report", "state"},
	)
)

var regOnce sync.Once

// RegisterDefault registers the collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(VendorRequests)
		Registry.MustRegister(VendorDuration)
		Registry.MustRegister(ReportBuilds)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
