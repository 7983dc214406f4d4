// Package reducer implements the pure state machine that maps a snapshot and
// an action to the successor snapshot.
//
// The root reducer is composed the same way the state is shaped: the active
// thread id and the thread list are reduced independently, and the thread
// reducer delegates to a per-thread messages reducer once it has located the
// target thread.
//
//	r := reducer.New(ident.UUID())
//	next, err := r.Reduce(current, action.AddMessage{ThreadID: "1-fca2", Text: "Hi"})
//
// Reduce never mutates its input. Invalid references fail closed: the input
// snapshot is returned unchanged together with an error describing the
// rejection. Action types the reducer does not recognise are identity
// transitions.
package reducer

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/threads/core/action"
	"github.com/tailored-agentic-units/threads/core/model"
	"github.com/tailored-agentic-units/threads/ident"
)

// Sentinel errors for rejected transitions.
var (
	ErrThreadNotFound  = errors.New("thread not found")
	ErrMessageNotFound = errors.New("message not found")
)

// Option configures a Reducer.
type Option func(*Reducer)

// WithPermissiveOpen makes OPEN_THREAD accept any id, including ids that name
// no thread. By default such actions are rejected with ErrThreadNotFound.
func WithPermissiveOpen() Option {
	return func(r *Reducer) { r.permissiveOpen = true }
}

// Reducer computes successor states. It holds no state of its own beyond the
// injected id/clock services and is safe for concurrent use when the services
// are.
type Reducer struct {
	services       ident.Services
	permissiveOpen bool
}

// New creates a Reducer. A nil services value falls back to ident.UUID().
func New(services ident.Services, opts ...Option) *Reducer {
	if services == nil {
		services = ident.UUID()
	}

	r := &Reducer{services: services}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reduce returns the state that results from applying a to s. Pointers to the
// built-in action types are reduced like their values. On error the returned
// state is s itself.
func (r *Reducer) Reduce(s model.State, a action.Action) (model.State, error) {
	a = action.Deref(a)

	active, err := r.activeThreadID(s, a)
	if err != nil {
		return s, err
	}

	threads, err := r.threads(s.Threads, a)
	if err != nil {
		return s, err
	}

	return model.State{
		ActiveThreadID: active,
		Threads:        threads,
	}, nil
}

func (r *Reducer) activeThreadID(s model.State, a action.Action) (string, error) {
	open, ok := a.(action.OpenThread)
	if !ok {
		return s.ActiveThreadID, nil
	}

	if !r.permissiveOpen && s.ThreadIndex(open.ID) < 0 {
		return s.ActiveThreadID, fmt.Errorf("%w: %s", ErrThreadNotFound, open.ID)
	}
	return open.ID, nil
}

func (r *Reducer) threads(threads []model.Thread, a action.Action) ([]model.Thread, error) {
	var index int

	switch act := a.(type) {
	case action.AddMessage:
		index = model.State{Threads: threads}.ThreadIndex(act.ThreadID)
		if index < 0 {
			return threads, fmt.Errorf("%w: %s", ErrThreadNotFound, act.ThreadID)
		}
	case action.DeleteMessage:
		index, _ = model.State{Threads: threads}.FindMessage(act.ID)
		if index < 0 {
			return threads, fmt.Errorf("%w: %s", ErrMessageNotFound, act.ID)
		}
	default:
		return threads, nil
	}

	next := make([]model.Thread, len(threads))
	copy(next, threads)
	next[index].Messages = r.messages(threads[index].Messages, a)
	return next, nil
}

func (r *Reducer) messages(messages []model.Message, a action.Action) []model.Message {
	switch act := a.(type) {
	case action.AddMessage:
		next := make([]model.Message, len(messages), len(messages)+1)
		copy(next, messages)
		return append(next, model.Message{
			ID:        r.services.NewID(),
			Text:      act.Text,
			CreatedAt: r.services.Now(),
		})
	case action.DeleteMessage:
		next := make([]model.Message, 0, len(messages))
		for _, m := range messages {
			if m.ID != act.ID {
				next = append(next, m)
			}
		}
		return next
	default:
		return messages
	}
}
