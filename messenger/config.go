package messenger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tailored-agentic-units/threads/reducer"
	"github.com/tailored-agentic-units/threads/seed"
	"github.com/tailored-agentic-units/threads/store"
)

const defaultObserver = "slog"

// Config holds initialization parameters for all messenger subsystems.
// Each section delegates to that subsystem's config-driven constructor.
type Config struct {
	Seed     seed.Config    `json:"seed" yaml:"seed"`
	Reducer  reducer.Config `json:"reducer" yaml:"reducer"`
	Store    store.Config   `json:"store" yaml:"store"`
	Observer string         `json:"observer,omitempty" yaml:"observer,omitempty"` // Registered observer name.
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Seed:     seed.DefaultConfig(),
		Reducer:  reducer.DefaultConfig(),
		Store:    store.DefaultConfig(),
		Observer: defaultObserver,
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Seed.Merge(&source.Seed)
	c.Reducer.Merge(&source.Reducer)
	c.Store.Merge(&source.Store)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// LoadConfig reads a YAML or JSON config file, merges it with defaults, and
// returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
