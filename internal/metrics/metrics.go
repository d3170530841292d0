// Package metrics exposes Prometheus collectors for the bookmeta service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors are registered on the default registry at package load, so the
// observe helpers are safe to call from any goroutine at any time.
var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmeta_http_requests_total",
			Help: "Total number of HTTP requests, labeled by method and code.",
		},
		[]string{"method", "code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookmeta_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, labeled by method and route.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route"},
	)

	bookLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmeta_book_lookups_total",
			Help: "Total number of search resolutions, labeled by outcome.",
		},
		[]string{"outcome"},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmeta_upstream_requests_total",
			Help: "Total number of outbound requests to the source site, labeled by phase and status.",
		},
		[]string{"phase", "status"},
	)

	scrapeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookmeta_scrape_errors_total",
			Help: "Total number of detail-scrape failures, labeled by kind.",
		},
		[]string{"kind"},
	)
)

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveHTTPRequest increments the inbound HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveLookup increments the lookup counter for the given outcome.
func ObserveLookup(outcome string) {
	bookLookupsTotal.WithLabelValues(outcome).Inc()
}

// ObserveUpstreamRequest records an outbound request to the source site.
// A status of zero means the request never produced an HTTP response.
func ObserveUpstreamRequest(phase string, status int) {
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	upstreamRequestsTotal.WithLabelValues(phase, label).Inc()
}

// ObserveScrapeError increments the scrape error counter for the given kind.
func ObserveScrapeError(kind string) {
	scrapeErrorsTotal.WithLabelValues(kind).Inc()
}
