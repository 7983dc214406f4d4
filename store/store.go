// Package store owns the current thread/message snapshot, applies actions
// through a reducer and notifies subscribers after every dispatch.
//
// A Store is an ordinary value: construct as many as needed, there is no
// package-level instance.
//
//	s := store.New(seed.Default(), reducer.New(ident.UUID()))
//	unsubscribe := s.Subscribe(func(st model.State) { render(st) })
//	defer unsubscribe()
//	err := s.Dispatch(ctx, action.OpenThread{ID: "2-ge91"})
//
// Dispatch is serialized. A Dispatch issued while another is in progress,
// whether from a listener on the same goroutine or from another goroutine, is
// queued and applied in FIFO order by the in-flight dispatcher before it
// returns.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tailored-agentic-units/threads/core/action"
	"github.com/tailored-agentic-units/threads/core/model"
	"github.com/tailored-agentic-units/threads/observability"
)

// Sentinel errors returned by Dispatch.
var (
	ErrNilAction = errors.New("nil action")
	ErrQueueFull = errors.New("dispatch queue full")
)

// Reducer computes the successor of a snapshot. On error it must return the
// input snapshot unchanged.
type Reducer interface {
	Reduce(state model.State, a action.Action) (model.State, error)
}

// Listener is called synchronously after each applied action with the newly
// installed snapshot.
type Listener func(state model.State)

// Option configures a Store.
type Option func(*Store)

// WithObserver sets the event observer. Defaults to NoOpObserver.
func WithObserver(o observability.Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithMaxQueue bounds the number of actions that may wait behind an
// in-flight dispatch. Non-positive values leave the default.
func WithMaxQueue(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxQueue = n
		}
	}
}

type subscription struct {
	id       uint64
	listener Listener
	removed  atomic.Bool
}

type pending struct {
	ctx    context.Context
	action action.Action
}

// Store holds the current snapshot. All methods are safe for concurrent use.
type Store struct {
	reducer  Reducer
	observer observability.Observer
	metrics  *Metrics

	state   model.State
	stateMu sync.RWMutex

	subs   []*subscription
	nextID uint64
	subsMu sync.Mutex

	queue       []pending
	dispatching bool
	maxQueue    int
	queueMu     sync.Mutex
}

// New creates a Store holding initial.
func New(initial model.State, r Reducer, opts ...Option) *Store {
	s := &Store{
		reducer:  r,
		observer: observability.NoOpObserver{},
		metrics:  NewMetrics(),
		state:    initial,
		maxQueue: DefaultMaxQueue,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current snapshot. The returned value shares memory with
// the store and must not be modified.
func (s *Store) State() model.State {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

// Metrics returns a point-in-time copy of the store counters.
func (s *Store) Metrics() MetricsSnapshot {
	return s.metrics.Snapshot()
}

// Dispatch applies a to the current snapshot and notifies subscribers.
//
// Actions the reducer rejects leave the snapshot untouched: subscribers are
// still notified, with the unchanged snapshot, and the error is returned.
// Nil and malformed actions are refused before reduction and notify nobody.
// When another dispatch is in flight the action is queued and Dispatch
// returns nil immediately; a later rejection of a queued action is reported
// only through the observer.
func (s *Store) Dispatch(ctx context.Context, a action.Action) error {
	a = action.Deref(a)
	if a == nil {
		return ErrNilAction
	}
	if err := a.Validate(); err != nil {
		s.reject(ctx, a, err)
		return err
	}

	s.queueMu.Lock()
	if s.dispatching {
		if len(s.queue) >= s.maxQueue {
			s.queueMu.Unlock()
			err := fmt.Errorf("%w: %d pending", ErrQueueFull, s.maxQueue)
			s.reject(ctx, a, err)
			return err
		}
		s.queue = append(s.queue, pending{ctx: ctx, action: a})
		depth := len(s.queue)
		s.queueMu.Unlock()

		s.metrics.RecordQueued(1)
		s.observer.OnEvent(ctx, observability.Event{
			Type:      EventQueue,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "store.Dispatch",
			Data: map[string]any{
				"action": string(a.Type()),
				"depth":  depth,
			},
		})
		return nil
	}
	s.dispatching = true
	s.queueMu.Unlock()

	drained := false
	defer func() {
		if !drained {
			// A listener panicked; release the dispatcher role and drop
			// whatever was queued behind it.
			s.queueMu.Lock()
			s.dispatching = false
			s.queue = nil
			s.queueMu.Unlock()
		}
	}()

	err := s.apply(ctx, a)

	for {
		s.queueMu.Lock()
		if len(s.queue) == 0 {
			s.dispatching = false
			drained = true
			s.queueMu.Unlock()
			break
		}
		next := s.queue[0]
		s.queue = s.queue[1:]
		s.queueMu.Unlock()

		_ = s.apply(next.ctx, next.action)
	}

	return err
}

// Subscribe registers listener and returns a function that removes it.
// Listeners run in registration order. A listener removed during a
// notification round is not called for the remainder of that round; a
// listener added during a round is first called on the next one.
func (s *Store) Subscribe(listener Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	s.subsMu.Lock()
	s.nextID++
	sub := &subscription{id: s.nextID, listener: listener}
	s.subs = append(s.subs, sub)
	count := len(s.subs)
	s.subsMu.Unlock()

	s.metrics.RecordSubscriber(1)
	s.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventSubscribe,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "store.Subscribe",
		Data: map[string]any{
			"subscription": sub.id,
			"subscribers":  count,
		},
	})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(sub) })
	}
}

func (s *Store) unsubscribe(sub *subscription) {
	sub.removed.Store(true)

	s.subsMu.Lock()
	for i, existing := range s.subs {
		if existing == sub {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			break
		}
	}
	count := len(s.subs)
	s.subsMu.Unlock()

	s.metrics.RecordSubscriber(-1)
	s.observer.OnEvent(context.Background(), observability.Event{
		Type:      EventUnsubscribe,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "store.Subscribe",
		Data: map[string]any{
			"subscription": sub.id,
			"subscribers":  count,
		},
	})
}

func (s *Store) apply(ctx context.Context, a action.Action) error {
	current := s.State()

	next, err := s.reducer.Reduce(current, a)
	if err != nil {
		err = fmt.Errorf("%s rejected: %w", a.Type(), err)
		s.reject(ctx, a, err)
		s.notify(ctx, current)
		return err
	}

	s.stateMu.Lock()
	s.state = next
	s.stateMu.Unlock()

	s.metrics.RecordDispatched(1)
	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventDispatch,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "store.Dispatch",
		Data: map[string]any{
			"action":         string(a.Type()),
			"active_thread":  next.ActiveThreadID,
			"threads":        len(next.Threads),
			"total_messages": next.MessageCount(),
		},
	})

	s.notify(ctx, next)
	return nil
}

func (s *Store) notify(ctx context.Context, state model.State) {
	s.subsMu.Lock()
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()

	notified := 0
	for _, sub := range subs {
		if sub.removed.Load() {
			continue
		}
		sub.listener(state)
		notified++
	}

	s.metrics.RecordNotified(notified)
	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventNotify,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "store.Dispatch",
		Data:      map[string]any{"listeners": notified},
	})
}

func (s *Store) reject(ctx context.Context, a action.Action, err error) {
	s.metrics.RecordRejected(1)
	s.observer.OnEvent(ctx, observability.Event{
		Type:      EventReject,
		Level:     observability.LevelWarning,
		Timestamp: time.Now(),
		Source:    "store.Dispatch",
		Data: map[string]any{
			"action": string(a.Type()),
			"error":  err.Error(),
		},
	})
}
