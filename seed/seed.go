// Package seed builds the initial snapshot a store starts from: either the
// built-in default or a YAML/JSON seed file.
package seed

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/threads/core/model"
)

// ErrInvalidSeed wraps every seed that cannot be parsed or fails validation.
var ErrInvalidSeed = errors.New("invalid seed")

// Default returns the built-in snapshot: two empty threads, the first active.
func Default() model.State {
	return model.State{
		ActiveThreadID: "1-fca2",
		Threads: []model.Thread{
			{ID: "1-fca2", Title: "Ramesh", Messages: []model.Message{}},
			{ID: "2-ge91", Title: "Power", Messages: []model.Message{}},
		},
	}
}

// Parse decodes a seed document. When active_thread_id is omitted the first
// thread becomes active. The result is validated before it is returned.
func Parse(data []byte) (model.State, error) {
	var s model.State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return model.State{}, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	if s.ActiveThreadID == "" && len(s.Threads) > 0 {
		s.ActiveThreadID = s.Threads[0].ID
	}
	for i := range s.Threads {
		if s.Threads[i].Messages == nil {
			s.Threads[i].Messages = []model.Message{}
		}
	}

	if err := s.Validate(); err != nil {
		return model.State{}, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}
	return s, nil
}

// Load reads and parses a seed file.
func Load(path string) (model.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Marshal encodes a snapshot in the seed file format.
func Marshal(s model.State) ([]byte, error) {
	return yaml.Marshal(s)
}
