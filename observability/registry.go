package observability

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ErrUnknownObserver is returned by GetObserver for unregistered names.
var ErrUnknownObserver = errors.New("unknown observer")

var (
	observers = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(slog.Default()),
	}
	mutex sync.RWMutex
)

// GetObserver looks up a named observer. "noop" and "slog" are always
// available; configuration refers to observers by these names.
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	obs, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObserver, name)
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	observers[name] = observer
}

// ObserverNames returns the registered names in lexical order.
func ObserverNames() []string {
	mutex.RLock()
	defer mutex.RUnlock()

	names := make([]string, 0, len(observers))
	for name := range observers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
