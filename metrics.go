package goSecure

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricCaptchaIssued is an exported constant or variable used by the security engine.
	MetricCaptchaIssued MetricID = iota
	// MetricCaptchaVerified is an exported constant or variable used by the security engine.
	MetricCaptchaVerified
	// MetricCaptchaIncorrect is an exported constant or variable used by the security engine.
	MetricCaptchaIncorrect
	// MetricCaptchaExpired is an exported constant or variable used by the security engine.
	MetricCaptchaExpired
	// MetricCaptchaUnavailable is an exported constant or variable used by the security engine.
	MetricCaptchaUnavailable
	// MetricChainResolved is an exported constant or variable used by the security engine.
	MetricChainResolved
	// MetricChainUnmatched is an exported constant or variable used by the security engine.
	MetricChainUnmatched
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds the engine's atomic counters. All methods are safe for
// concurrent use and a nil receiver is a no-op.
type Metrics struct {
	counters [metricIDCount]paddedCounter
}

// MetricsSnapshot is a point-in-time copy of every counter.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// NewMetrics returns a zeroed counter set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Inc adds one to the counter identified by id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Get returns the current value of the counter identified by id.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot copies every counter into a map.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
