// Package metrics provides Prometheus-based metrics collection for portsim.
package metrics

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
)

const (
	// Namespace for all portsim metrics
	namespace = "portsim"

	// Subsystems
	subsystemScan   = "scan"
	subsystemEngine = "engine"
	subsystemStream = "stream"
	subsystemSystem = "system"
	subsystemAPI    = "api"
)

// PrometheusMetrics holds all Prometheus metric collectors
type PrometheusMetrics struct {
	// Scan metrics
	scansTotal   *prometheus.CounterVec
	scanDuration *prometheus.HistogramVec
	findings     *prometheus.CounterVec
	activeScans  prometheus.Gauge

	// Engine metrics
	ticks prometheus.Counter

	// Stream metrics
	streamClients  prometheus.Gauge
	streamMessages *prometheus.CounterVec
	streamDropped  prometheus.Counter

	// API metrics
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// System metrics
	memoryUsage prometheus.Gauge
	goroutines  prometheus.Gauge
	uptime      prometheus.Gauge

	startTime  time.Time
	lastUpdate time.Time
	mu         sync.RWMutex
	registry   *prometheus.Registry
}

// NewPrometheusMetrics creates a new Prometheus metrics instance with all collectors
func NewPrometheusMetrics() *PrometheusMetrics {
	registry := prometheus.NewRegistry()

	pm := &PrometheusMetrics{
		startTime: time.Now(),
		registry:  registry,
	}

	pm.initScanMetrics()
	pm.initStreamMetrics()
	pm.initAPIMetrics()
	pm.initSystemMetrics()

	pm.registerMetrics()

	// Register standard Go and process collectors for runtime visibility
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return pm
}

// initScanMetrics initializes scan and engine metrics
func (pm *PrometheusMetrics) initScanMetrics() {
	pm.scansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "total",
			Help:      "Total number of scans by type and outcome",
		},
		[]string{"scan_type", "outcome"},
	)

	pm.scanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "duration_seconds",
			Help:      "Duration of finished scans in seconds",
			Buckets:   []float64{0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0, 300.0, 3600.0},
		},
		[]string{"scan_type"},
	)

	pm.findings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "findings_total",
			Help:      "Total number of findings by port status",
		},
		[]string{"port_status"},
	)

	pm.activeScans = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemScan,
			Name:      "active",
			Help:      "Number of scans currently running or paused",
		},
	)

	pm.ticks = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemEngine,
			Name:      "ticks_total",
			Help:      "Total number of simulation steps applied",
		},
	)
}

// initStreamMetrics initializes live stream metrics
func (pm *PrometheusMetrics) initStreamMetrics() {
	pm.streamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemStream,
			Name:      "clients",
			Help:      "Number of connected WebSocket clients",
		},
	)

	pm.streamMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemStream,
			Name:      "messages_total",
			Help:      "Total number of messages broadcast by type",
		},
		[]string{"type"},
	)

	pm.streamDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemStream,
			Name:      "dropped_total",
			Help:      "Total number of messages dropped because a buffer was full",
		},
	)
}

// initAPIMetrics initializes API-related metrics
func (pm *PrometheusMetrics) initAPIMetrics() {
	pm.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemAPI,
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	pm.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemAPI,
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 2.0, 5.0},
		},
		[]string{"method", "path"},
	)
}

// initSystemMetrics initializes system-related metrics
func (pm *PrometheusMetrics) initSystemMetrics() {
	pm.memoryUsage = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemSystem,
			Name:      "memory_bytes",
			Help:      "Current memory usage in bytes",
		},
	)

	pm.goroutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemSystem,
			Name:      "goroutines",
			Help:      "Current number of goroutines",
		},
	)

	pm.uptime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemSystem,
			Name:      "uptime_seconds",
			Help:      "Application uptime in seconds",
		},
	)
}

// registerMetrics registers all metrics with the Prometheus registry
func (pm *PrometheusMetrics) registerMetrics() {
	pm.registry.MustRegister(
		pm.scansTotal,
		pm.scanDuration,
		pm.findings,
		pm.activeScans,
		pm.ticks,
		pm.streamClients,
		pm.streamMessages,
		pm.streamDropped,
		pm.httpRequests,
		pm.httpDuration,
		pm.memoryUsage,
		pm.goroutines,
		pm.uptime,
	)
}

// GetRegistry returns the Prometheus registry for HTTP handler
func (pm *PrometheusMetrics) GetRegistry() *prometheus.Registry {
	return pm.registry
}

// Engine recorder methods

// ScanStarted counts a new run as active.
func (pm *PrometheusMetrics) ScanStarted(string) {
	pm.activeScans.Inc()
}

// ScanFinished records the outcome and duration of a run.
func (pm *PrometheusMetrics) ScanFinished(scanType, outcome string, duration time.Duration) {
	pm.activeScans.Dec()
	pm.scansTotal.WithLabelValues(scanType, outcome).Inc()
	pm.scanDuration.WithLabelValues(scanType).Observe(duration.Seconds())
}

// FindingRecorded counts a finding by port status.
func (pm *PrometheusMetrics) FindingRecorded(status string) {
	pm.findings.WithLabelValues(status).Inc()
}

// TickApplied counts a simulation step.
func (pm *PrometheusMetrics) TickApplied() {
	pm.ticks.Inc()
}

// Stream methods

// SetStreamClients sets the number of connected stream clients
func (pm *PrometheusMetrics) SetStreamClients(count int) {
	pm.streamClients.Set(float64(count))
}

// IncrementStreamMessages counts a broadcast message
func (pm *PrometheusMetrics) IncrementStreamMessages(messageType string) {
	pm.streamMessages.WithLabelValues(messageType).Inc()
}

// IncrementStreamDropped counts a dropped message
func (pm *PrometheusMetrics) IncrementStreamDropped() {
	pm.streamDropped.Inc()
}

// API methods

// ObserveHTTPRequest records a handled HTTP request
func (pm *PrometheusMetrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	pm.httpRequests.WithLabelValues(method, path, status).Inc()
	pm.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// System Metrics Methods

// UpdateSystemMetrics updates all system metrics with current values
func (pm *PrometheusMetrics) UpdateSystemMetrics() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	pm.memoryUsage.Set(float64(memStats.Alloc))
	pm.goroutines.Set(float64(runtime.NumGoroutine()))
	pm.uptime.Set(time.Since(pm.startTime).Seconds())

	pm.lastUpdate = time.Now()
}

// GetUptime returns the application uptime
func (pm *PrometheusMetrics) GetUptime() time.Duration {
	return time.Since(pm.startTime)
}

// GetLastUpdate returns the last metrics update time
func (pm *PrometheusMetrics) GetLastUpdate() time.Time {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.lastUpdate
}

// StartPeriodicUpdates refreshes system metrics on the given cron schedule
// until ctx is done. It updates once immediately and returns after the
// scheduler has stopped.
func (pm *PrometheusMetrics) StartPeriodicUpdates(ctx context.Context, schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, pm.UpdateSystemMetrics); err != nil {
		return err
	}

	pm.UpdateSystemMetrics()
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
