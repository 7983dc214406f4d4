package reducer

// Config holds reducer behavior switches.
type Config struct {
	// PermissiveOpen accepts OPEN_THREAD for ids that name no thread.
	PermissiveOpen bool `json:"permissive_open,omitempty" yaml:"permissive_open,omitempty"`
}

// DefaultConfig returns the default reducer configuration (strict OPEN_THREAD).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.PermissiveOpen {
		c.PermissiveOpen = true
	}
}

// Options translates the configuration into Reducer options.
func (c *Config) Options() []Option {
	var opts []Option
	if c.PermissiveOpen {
		opts = append(opts, WithPermissiveOpen())
	}
	return opts
}
