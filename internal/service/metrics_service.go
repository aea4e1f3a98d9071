package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/afterschool-console/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation of the console.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	syncTotal       *prometheus.CounterVec
	syncDuration    *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	invalidations   *prometheus.CounterVec
	workspaces      prometheus.Gauge
}

// NewMetricsService registers the console collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_http_request_duration_seconds",
		Help:    "Duration of console HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_http_requests_total",
		Help: "Total number of console HTTP requests",
	}, []string{"method", "path", "status"})

	backendDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_backend_call_duration_seconds",
		Help:    "Duration of calls to the course-management backend",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	syncTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_view_sync_total",
		Help: "View synchronizations by outcome (committed, stale, failed)",
	}, []string{"view", "outcome"})

	syncDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "console_view_sync_duration_seconds",
		Help:    "Time from issuing a view fetch to its resolution",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_transitions_total",
		Help: "Transitions applied through the console by kind and outcome",
	}, []string{"kind", "outcome"})

	invalidations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_view_invalidations_total",
		Help: "Cross-view invalidations by view and result",
	}, []string{"view", "result"})

	workspaces := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "console_active_workspaces",
		Help: "Console sessions holding in-memory view state",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, backendDuration, syncTotal, syncDuration, transitions, invalidations, workspaces, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		backendDuration: backendDuration,
		syncTotal:       syncTotal,
		syncDuration:    syncDuration,
		transitions:     transitions,
		invalidations:   invalidations,
		workspaces:      workspaces,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records console request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveBackendCall records a backend round-trip; status 0 means the call
// never got a response.
func (m *MetricsService) ObserveBackendCall(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.backendDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveSync records the outcome of a view fetch.
func (m *MetricsService) ObserveSync(view models.ViewName, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.syncTotal.WithLabelValues(string(view), outcome).Inc()
	m.syncDuration.WithLabelValues(string(view)).Observe(duration.Seconds())
}

// ObserveTransition counts a transition outcome.
func (m *MetricsService) ObserveTransition(kind models.TransitionKind, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(kind), outcome).Inc()
}

// ObserveInvalidation counts one view refresh triggered by a transition.
func (m *MetricsService) ObserveInvalidation(view models.ViewName, refreshed bool, err error) {
	if m == nil {
		return
	}
	result := "skipped"
	switch {
	case err != nil:
		result = "failed"
	case refreshed:
		result = "refreshed"
	}
	m.invalidations.WithLabelValues(string(view), result).Inc()
}

// SetActiveWorkspaces reports how many sessions hold view state.
func (m *MetricsService) SetActiveWorkspaces(n int) {
	if m == nil {
		return
	}
	m.workspaces.Set(float64(n))
}
