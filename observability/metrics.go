package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver counts events in a Prometheus counter vector labelled by
// event type and severity text.
type MetricsObserver struct {
	events *prometheus.CounterVec
}

// NewMetricsObserver creates a MetricsObserver and registers its collector
// with reg. The counter is exported as <namespace>_events_total. A nil reg
// leaves the collector unregistered.
func NewMetricsObserver(reg prometheus.Registerer, namespace string) (*MetricsObserver, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Events emitted by the message store, by type and level.",
		},
		[]string{"type", "level"},
	)

	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, fmt.Errorf("failed to register event counter: %w", err)
		}
	}

	return &MetricsObserver{events: events}, nil
}

func (o *MetricsObserver) OnEvent(_ context.Context, event Event) {
	o.events.WithLabelValues(string(event.Type), event.Level.String()).Inc()
}
