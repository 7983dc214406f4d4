package store

import "sync/atomic"

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Dispatched    int64
	Rejected      int64
	Queued        int64
	Notifications int64
	Subscribers   int64
}

// Metrics counts store activity. Notifications is the total number of
// listener invocations.
type Metrics struct {
	dispatched    atomic.Int64
	rejected      atomic.Int64
	queued        atomic.Int64
	notifications atomic.Int64
	subscribers   atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordDispatched(delta int) {
	m.dispatched.Add(int64(delta))
}

func (m *Metrics) RecordRejected(delta int) {
	m.rejected.Add(int64(delta))
}

func (m *Metrics) RecordQueued(delta int) {
	m.queued.Add(int64(delta))
}

func (m *Metrics) RecordNotified(delta int) {
	m.notifications.Add(int64(delta))
}

func (m *Metrics) RecordSubscriber(delta int) {
	m.subscribers.Add(int64(delta))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Dispatched:    m.dispatched.Load(),
		Rejected:      m.rejected.Load(),
		Queued:        m.queued.Load(),
		Notifications: m.notifications.Load(),
		Subscribers:   m.subscribers.Load(),
	}
}
