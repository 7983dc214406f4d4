package seed

import "github.com/tailored-agentic-units/threads/core/model"

// Config selects the initial snapshot.
type Config struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // Seed file; empty uses Default.
}

// DefaultConfig returns the default seed configuration (built-in snapshot).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
}

// New builds the initial snapshot from configuration.
func New(cfg *Config) (model.State, error) {
	if cfg.Path == "" {
		return Default(), nil
	}
	return Load(cfg.Path)
}
