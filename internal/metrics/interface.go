// Package metrics provides interfaces for metrics collection and monitoring.
package metrics

//go:generate mockgen -source=interface.go -destination=mocks/mock_interface.go -package=mocks

import (
	"time"

	"github.com/anstrom/portsim/internal/scanning"
)

// HTTPRecorder records API request metrics.
// This interface allows the HTTP middleware to be tested without a registry.
type HTTPRecorder interface {
	ObserveHTTPRequest(method, path, status string, duration time.Duration)
}

// StreamRecorder records live stream metrics.
type StreamRecorder interface {
	SetStreamClients(count int)
	IncrementStreamMessages(messageType string)
	IncrementStreamDropped()
}

// Ensure that PrometheusMetrics implements every recorder interface.
var (
	_ scanning.Recorder = (*PrometheusMetrics)(nil)
	_ HTTPRecorder      = (*PrometheusMetrics)(nil)
	_ StreamRecorder    = (*PrometheusMetrics)(nil)
)
