package output

import "time"

// MetricsCollector defines the secondary port for metrics collection.
type MetricsCollector interface {
	// IncCompositions increments the composition counter. Outcome is the
	// composed CRS type or the failure kind.
	IncCompositions(outcome string, success bool)

	// ObserveComposeDuration records how long one composition took.
	ObserveComposeDuration(duration time.Duration)

	// AddAxesDropped counts axes dropped as unclassifiable.
	AddAxesDropped(count int)

	// SetDatasetsRegistered sets the number of registered datasets.
	SetDatasetsRegistered(count int)

	// SetDatasetsReady sets the number of ready datasets.
	SetDatasetsReady(count int)

	// IncCacheLookups increments the CRS cache lookup counter.
	IncCacheLookups(hit bool)

	// IncStorageOperations increments the storage operation counter.
	IncStorageOperations(operation string, success bool)

	// ObserveStorageDuration records storage operation duration.
	ObserveStorageDuration(operation string, duration time.Duration)
}

// NoOpMetrics is a no-op implementation of MetricsCollector.
type NoOpMetrics struct{}

// IncCompositions implements MetricsCollector.
func (n *NoOpMetrics) IncCompositions(_ string, _ bool) {}

// ObserveComposeDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveComposeDuration(_ time.Duration) {}

// AddAxesDropped implements MetricsCollector.
func (n *NoOpMetrics) AddAxesDropped(_ int) {}

// SetDatasetsRegistered implements MetricsCollector.
func (n *NoOpMetrics) SetDatasetsRegistered(_ int) {}

// SetDatasetsReady implements MetricsCollector.
func (n *NoOpMetrics) SetDatasetsReady(_ int) {}

// IncCacheLookups implements MetricsCollector.
func (n *NoOpMetrics) IncCacheLookups(_ bool) {}

// IncStorageOperations implements MetricsCollector.
func (n *NoOpMetrics) IncStorageOperations(_ string, _ bool) {}

// ObserveStorageDuration implements MetricsCollector.
func (n *NoOpMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
