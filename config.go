package queuectl

import (
	"os"
	"time"
)

// Config holds process-wide settings for the queuectl engine. It is read
// once at startup (from environment variables and CLI flags) and never
// mutated afterward; per-key overrides for retry behavior live in the
// store's own "config" table (getConfig/setConfig/listConfig), not here.
type Config struct {
	// DBPath is the path to the embedded database file.
	DBPath string

	// PollInterval is how often an idle worker retries claimNextJob.
	PollInterval time.Duration

	// PollBurst is the token bucket burst size for the worker's poll
	// rate limiter.
	PollBurst int

	// ShutdownTimeout bounds how long a worker waits for an in-flight
	// job to finish before a forced exit.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults, matching the
// values for an unconfigured installation.
func DefaultConfig() Config {
	return Config{
		DBPath:          "./queue.db",
		PollInterval:    500 * time.Millisecond,
		PollBurst:       1,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Option configures a Config.
type Option func(*Config)

// WithDBPath overrides the database path.
func WithDBPath(path string) Option {
	return func(c *Config) { c.DBPath = path }
}

// WithPollInterval overrides the worker poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) { c.PollInterval = d }
}

// WithShutdownTimeout overrides the graceful-shutdown deadline.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) { c.ShutdownTimeout = d }
}

// LoadConfig builds a Config from defaults, then environment variables,
// then the supplied functional options (options win).
//
// QUEUECTL_DB_PATH overrides DBPath; this is the only environment
// variable.
func LoadConfig(opts ...Option) Config {
	c := DefaultConfig()
	if v := os.Getenv("QUEUECTL_DB_PATH"); v != "" {
		c.DBPath = v
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
