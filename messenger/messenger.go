// Package messenger composes seed, reducer, store and observer into a single
// message-thread container initialized from configuration.
//
// Functional options override any config-created piece, mostly for tests.
//
//	m, err := messenger.New(&cfg)
//	err = m.OpenThread(ctx, "2-ge91")
//	err = m.Send(ctx, "hello")
package messenger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tailored-agentic-units/threads/core/action"
	"github.com/tailored-agentic-units/threads/core/model"
	"github.com/tailored-agentic-units/threads/ident"
	"github.com/tailored-agentic-units/threads/observability"
	"github.com/tailored-agentic-units/threads/reducer"
	"github.com/tailored-agentic-units/threads/seed"
	"github.com/tailored-agentic-units/threads/store"
)

// Option configures a Messenger before its store is built.
type Option func(*Messenger)

// WithServices overrides the UUID id/clock services.
func WithServices(s ident.Services) Option {
	return func(m *Messenger) { m.services = s }
}

// WithObserver overrides the config-selected observer.
func WithObserver(o observability.Observer) Option {
	return func(m *Messenger) { m.observer = o }
}

// WithLogger routes events to logger through a SlogObserver.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Messenger) { m.observer = observability.NewSlogObserver(logger) }
}

// WithInitialState overrides the config-selected seed.
func WithInitialState(s model.State) Option {
	return func(m *Messenger) { m.initial = s }
}

// Messenger owns one store of threads and messages.
type Messenger struct {
	services ident.Services
	observer observability.Observer
	initial  model.State
	store    *store.Store
}

// Rejection records a replayed action the store refused.
type Rejection struct {
	Index  int           // Position in the replayed script.
	Action action.Action // The refused action.
	Err    error         // Wrapped reducer or validation error.
}

// ReplayResult holds the outcome of a Replay. When the context ends early,
// Skipped counts the actions never dispatched and Err holds the context error.
type ReplayResult struct {
	Applied  int
	Rejected []Rejection
	Skipped  int
	Err      error
}

// New creates a Messenger from configuration.
func New(cfg *Config, opts ...Option) (*Messenger, error) {
	initial, err := seed.New(&cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create seed: %w", err)
	}

	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	m := &Messenger{
		services: ident.UUID(),
		observer: observer,
		initial:  initial,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.observer == nil {
		m.observer = observability.NoOpObserver{}
	}

	r := reducer.New(m.services, cfg.Reducer.Options()...)

	storeOpts := append(cfg.Store.Options(), store.WithObserver(m.observer))
	m.store = store.New(m.initial, r, storeOpts...)

	return m, nil
}

// State returns the current snapshot.
func (m *Messenger) State() model.State {
	return m.store.State()
}

// Metrics returns the store counters.
func (m *Messenger) Metrics() store.MetricsSnapshot {
	return m.store.Metrics()
}

// Subscribe registers a listener on the underlying store.
func (m *Messenger) Subscribe(listener store.Listener) (unsubscribe func()) {
	return m.store.Subscribe(listener)
}

// Dispatch forwards a to the store.
func (m *Messenger) Dispatch(ctx context.Context, a action.Action) error {
	return m.store.Dispatch(ctx, a)
}

// OpenThread makes id the active thread.
func (m *Messenger) OpenThread(ctx context.Context, id string) error {
	return m.store.Dispatch(ctx, action.OpenThread{ID: id})
}

// Send appends text to the active thread.
func (m *Messenger) Send(ctx context.Context, text string) error {
	active, ok := m.store.State().ActiveThread()
	if !ok {
		return ErrNoActiveThread
	}
	return m.SendTo(ctx, active.ID, text)
}

// SendTo appends text to the named thread.
func (m *Messenger) SendTo(ctx context.Context, threadID, text string) error {
	return m.store.Dispatch(ctx, action.AddMessage{ThreadID: threadID, Text: text})
}

// Delete removes the message with the given id from whichever thread holds it.
func (m *Messenger) Delete(ctx context.Context, id string) error {
	return m.store.Dispatch(ctx, action.DeleteMessage{ID: id})
}

// Replay dispatches actions in order. Rejected actions are recorded and
// replay continues with the next one. Replay stops before the next action once
// ctx is done.
func (m *Messenger) Replay(ctx context.Context, actions []action.Action) ReplayResult {
	m.observer.OnEvent(ctx, observability.Event{
		Type:      EventReplayStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "messenger.Replay",
		Data:      map[string]any{"actions": len(actions)},
	})

	var result ReplayResult
	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			result.Skipped = len(actions) - i
			result.Err = err
			break
		}

		if err := m.store.Dispatch(ctx, a); err != nil {
			result.Rejected = append(result.Rejected, Rejection{Index: i, Action: a, Err: err})

			m.observer.OnEvent(ctx, observability.Event{
				Type:      EventReplayReject,
				Level:     observability.LevelWarning,
				Timestamp: time.Now(),
				Source:    "messenger.Replay",
				Data: map[string]any{
					"index": i,
					"error": err.Error(),
				},
			})
			continue
		}
		result.Applied++
	}

	m.observer.OnEvent(ctx, observability.Event{
		Type:      EventReplayComplete,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "messenger.Replay",
		Data: map[string]any{
			"applied":  result.Applied,
			"rejected": len(result.Rejected),
			"skipped":  result.Skipped,
		},
	})

	return result
}
