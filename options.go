package closet

import "time"

// Config holds construction-time tuning parameters for BuildFromSpec, the
// lower-level construction entry point that walks a user-supplied
// ConstraintSpec directly (see construct.go). ClosetBuilder.Build does not
// take a Config: it is synchronous and unconditional per the governing
// concurrency model, so it has nothing to tune here.
type Config struct {
	// Timeout bounds a single BuildFromSpec call. Zero means no timeout.
	Timeout time.Duration

	// MemoryLimit bounds the number of arena bytes BuildFromSpec may
	// allocate, approximated by node count. Zero means no limit.
	MemoryLimit int64
}

// Option configures BuildFromSpec using the functional options pattern.
type Option func(*Config)

// WithTimeout bounds BuildFromSpec's construction time. Once it elapses,
// BuildFromSpec returns the context's deadline-exceeded error.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

// WithMemoryLimit bounds the number of bytes BuildFromSpec's arena growth
// may consume during a single call, returning ErrMemoryLimit once
// exceeded. The estimate is coarse (a fixed per-node byte count) since the
// arena is shared process-wide state that BuildFromSpec does not own
// exclusively.
func WithMemoryLimit(bytes int64) Option {
	return func(c *Config) { c.MemoryLimit = bytes }
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
