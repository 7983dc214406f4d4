package messenger

import "errors"

// ErrNoActiveThread is returned by Send when the active thread id names no
// thread, which only happens after a permissive OPEN_THREAD.
var ErrNoActiveThread = errors.New("no active thread")
