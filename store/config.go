package store

// DefaultMaxQueue is the default bound on actions waiting behind an
// in-flight dispatch.
const DefaultMaxQueue = 1024

// Config holds store initialization parameters.
type Config struct {
	MaxQueue int `json:"max_queue,omitempty" yaml:"max_queue,omitempty"`
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{MaxQueue: DefaultMaxQueue}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxQueue > 0 {
		c.MaxQueue = source.MaxQueue
	}
}

// Options translates the configuration into Store options.
func (c *Config) Options() []Option {
	return []Option{WithMaxQueue(c.MaxQueue)}
}
