// Package metrics provides Prometheus metrics for the squads service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Roster metrics
	rostersLoaded     prometheus.Counter
	rosterLoadErrors  *prometheus.CounterVec
	rosterSize        prometheus.Gauge
	rosterSkillCount  prometheus.Gauge
	rankingsByKind    *prometheus.CounterVec
	rankingLatency    prometheus.Histogram
	rosterLoadLatency prometheus.Histogram

	// Distribution metrics
	distributions        prometheus.Counter
	distributionFailures *prometheus.CounterVec
	distributionLatency  prometheus.Histogram
	teamCount            prometheus.Gauge
	teamSizeSpread       prometheus.Gauge
	teamsProduced        prometheus.Counter

	// Export metrics
	exports      *prometheus.CounterVec
	exportErrors *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager registered on the configured registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squads",
		subsystem:        "teams",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often gauges fed by polling should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	counter := func(name, help string) prometheus.Counter {
		return auto.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels,
		})
	}
	counterVec := func(name, help string, keys ...string) *prometheus.CounterVec {
		return auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels,
		}, keys)
	}
	gauge := func(name, help string) prometheus.Gauge {
		return auto.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels,
		})
	}
	histogram := func(name, help string, buckets []float64) prometheus.Histogram {
		return auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name(name), Help: help, ConstLabels: labels, Buckets: buckets,
		})
	}

	m.rostersLoaded = counter("rosters_loaded_total", "Total number of rosters loaded")
	m.rosterLoadErrors = counterVec("roster_load_errors_total", "Roster loads rejected, by reason", "reason")
	m.rosterSize = gauge("roster_size", "Number of people on the current roster")
	m.rosterSkillCount = gauge("roster_skill_count", "Number of skill dimensions on the current roster")
	m.rankingsByKind = counterVec("rankings_total", "Roster rankings, by criterion kind", "criterion")
	m.rankingLatency = histogram("ranking_latency_milliseconds", "Time spent scoring and ranking a roster", m.histogramBuckets)
	m.rosterLoadLatency = histogram("roster_load_latency_milliseconds", "Time spent parsing a roster", m.histogramBuckets)

	m.distributions = counter("distributions_total", "Successful team distributions")
	m.distributionFailures = counterVec("distribution_failures_total", "Rejected team distributions, by reason", "reason")
	m.distributionLatency = histogram("distribution_latency_milliseconds", "Time spent distributing a roster into teams", m.histogramBuckets)
	m.teamCount = gauge("team_count", "Number of teams in the current team list")
	m.teamSizeSpread = gauge("team_size_spread", "Largest minus smallest team size in the current team list")
	m.teamsProduced = counter("teams_produced_total", "Teams created across all distributions")

	m.exports = counterVec("exports_total", "Team list exports, by format", "format")
	m.exportErrors = counterVec("export_errors_total", "Failed team list exports, by format", "format")

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name("http_requests_total"),
			Help: "Total number of HTTP requests by endpoint and method", ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: m.name("http_request_duration_milliseconds"),
			Help: "HTTP request duration in milliseconds", ConstLabels: labels, Buckets: m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByType = counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = histogram("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// Roster metrics functions.

// RecordRosterLoaded counts a roster load and sets the roster gauges.
func RecordRosterLoaded(people, skills int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.rostersLoaded.Inc()
	globalManager.rosterSize.Set(float64(people))
	globalManager.rosterSkillCount.Set(float64(skills))
	globalManager.rosterLoadLatency.Observe(latencyMs)
}

// RecordRosterLoadError counts a rejected roster.
func RecordRosterLoadError(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.rosterLoadErrors.WithLabelValues(reason).Inc()
}

// RecordRanking counts a ranking pass by criterion kind ("average" or "skill").
func RecordRanking(kind string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.rankingsByKind.WithLabelValues(kind).Inc()
	globalManager.rankingLatency.Observe(latencyMs)
}

// Distribution metrics functions.

// RecordDistribution counts a successful distribution and sets the team gauges.
func RecordDistribution(teams, spread int, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.distributions.Inc()
	globalManager.teamsProduced.Add(float64(teams))
	globalManager.teamCount.Set(float64(teams))
	globalManager.teamSizeSpread.Set(float64(spread))
	globalManager.distributionLatency.Observe(latencyMs)
}

// RecordDistributionFailure counts a rejected distribution.
func RecordDistributionFailure(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.distributionFailures.WithLabelValues(reason).Inc()
}

// Export metrics functions.

// RecordExport counts an export in the given format.
func RecordExport(format string) {
	if !globalManager.enabled {
		return
	}
	globalManager.exports.WithLabelValues(format).Inc()
}

// RecordExportError counts a failed export.
func RecordExportError(format string) {
	if !globalManager.enabled {
		return
	}
	globalManager.exportErrors.WithLabelValues(format).Inc()
}

// HTTP metrics functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics functions.

// UpdateSystemMemoryUsage sets system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// SetEnabled toggles recording of the domain metrics on the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled = enabled
}

// RefreshInterval is how often the global manager's polled gauges refresh.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Since returns milliseconds elapsed since start.
func Since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
