package model

import (
	"errors"
	"fmt"
)

// ErrInvalidState is wrapped by every structural violation reported by Validate.
var ErrInvalidState = errors.New("invalid state")

// Validate checks the structural invariants of a snapshot: non-empty and
// unique thread ids, globally unique non-empty message ids, and an active
// thread id that names an existing thread.
func (s State) Validate() error {
	threads := make(map[string]struct{}, len(s.Threads))
	messages := make(map[string]string, s.MessageCount())

	for i, t := range s.Threads {
		if t.ID == "" {
			return fmt.Errorf("%w: thread %d has an empty id", ErrInvalidState, i)
		}
		if _, dup := threads[t.ID]; dup {
			return fmt.Errorf("%w: duplicate thread id %q", ErrInvalidState, t.ID)
		}
		threads[t.ID] = struct{}{}

		for j, m := range t.Messages {
			if m.ID == "" {
				return fmt.Errorf("%w: message %d in thread %q has an empty id", ErrInvalidState, j, t.ID)
			}
			if owner, dup := messages[m.ID]; dup {
				return fmt.Errorf("%w: message id %q appears in threads %q and %q", ErrInvalidState, m.ID, owner, t.ID)
			}
			messages[m.ID] = t.ID
		}
	}

	if _, ok := threads[s.ActiveThreadID]; !ok {
		return fmt.Errorf("%w: active thread %q does not exist", ErrInvalidState, s.ActiveThreadID)
	}

	return nil
}
