// Package ident provides the identifier and clock capability injected into the
// reducer. Keeping both behind an interface lets the reducer stay a pure,
// replayable function under test.
package ident

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Services generates message identifiers and timestamps.
// Implementations must be safe for concurrent use.
type Services interface {
	// NewID returns an identifier never returned before by this Services.
	NewID() string
	// Now returns the current time as unix milliseconds.
	Now() int64
}

type uuidServices struct{}

// UUID returns Services backed by UUIDv7 identifiers and the wall clock.
func UUID() Services {
	return uuidServices{}
}

func (uuidServices) NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (uuidServices) Now() int64 {
	return time.Now().UnixMilli()
}

// Sequence is a deterministic Services: ids are "<prefix>-1", "<prefix>-2", ...
// and the clock advances by a fixed step on every Now call.
type Sequence struct {
	prefix string
	next   int
	clock  int64
	step   int64
	mu     sync.Mutex
}

// NewSequence creates a Sequence whose first Now call returns start.
func NewSequence(prefix string, start, step int64) *Sequence {
	return &Sequence{
		prefix: prefix,
		clock:  start,
		step:   step,
	}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}

func (s *Sequence) Now() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock
	s.clock += s.step
	return now
}
