package store

import "github.com/tailored-agentic-units/threads/observability"

// Store event types.
const (
	EventDispatch    observability.EventType = "store.dispatch"
	EventReject      observability.EventType = "store.reject"
	EventQueue       observability.EventType = "store.queue"
	EventNotify      observability.EventType = "store.notify"
	EventSubscribe   observability.EventType = "store.subscribe"
	EventUnsubscribe observability.EventType = "store.unsubscribe"
)
