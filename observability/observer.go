// Package observability carries store and messenger events to logging and
// metrics sinks. Levels follow OpenTelemetry SeverityNumber ranges so events
// can be forwarded to an OTel collector without translation.
package observability

import (
	"context"
	"log/slog"
	"time"
)

// Level is an event severity on the OTel SeverityNumber scale.
type Level int

const (
	LevelVerbose Level = 5  // DEBUG range 5-8
	LevelInfo    Level = 9  // INFO range 9-12
	LevelWarning Level = 13 // WARN range 13-16
	LevelError   Level = 17 // ERROR range 17-20
)

// String returns the OTel severity text.
func (l Level) String() string {
	switch {
	case l <= 4:
		return "TRACE"
	case l <= 8:
		return "DEBUG"
	case l <= 12:
		return "INFO"
	case l <= 16:
		return "WARN"
	case l <= 20:
		return "ERROR"
	default:
		return "FATAL"
	}
}

// SlogLevel converts the severity to the nearest slog.Level.
func (l Level) SlogLevel() slog.Level {
	switch {
	case l <= 8:
		return slog.LevelDebug
	case l <= 12:
		return slog.LevelInfo
	case l <= 16:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// EventType names an event. Packages declare their own constants,
// e.g. "store.dispatch".
type EventType string

// Event describes something that happened inside a component. Data holds
// execution metadata (action types, ids, counts), never message text.
type Event struct {
	Type      EventType
	Level     Level
	Timestamp time.Time
	Source    string
	Data      map[string]any
}

// Observer receives events. OnEvent must not block the caller for long and
// must not dispatch back into the component that emitted the event.
type Observer interface {
	OnEvent(ctx context.Context, event Event)
}
