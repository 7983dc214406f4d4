package messenger

import "github.com/tailored-agentic-units/threads/observability"

// Messenger event types emitted around script replay.
const (
	EventReplayStart    observability.EventType = "messenger.replay.start"
	EventReplayReject   observability.EventType = "messenger.replay.reject"
	EventReplayComplete observability.EventType = "messenger.replay.complete"
)
