package guard

import "go.uber.org/zap"

// Config holds the instrumentation settings of a guard.
type Config struct {
	// Name labels the guard in logs and metrics.
	Name string
	// Logger receives debug entries for the guard lifecycle and a warn entry
	// for leaks. Defaults to a no-op logger.
	Logger *zap.Logger
	// Observer receives lifecycle events. Defaults to BaseObserver.
	Observer Observer
	// LeakCheck reports guards that are garbage collected while still armed.
	LeakCheck bool

	instrumented bool
}

// DefaultConfig returns a config that records nothing.
func DefaultConfig() Config {
	return Config{
		Logger:   zap.NewNop(),
		Observer: BaseObserver{},
	}
}

// Option adjusts the Config of a guard at construction time.
type Option func(*Config)

// WithName sets the label used in logs and metrics.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithLogger sets the zap logger for lifecycle entries.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) {
		if logger == nil {
			return
		}
		c.Logger = logger
		c.instrumented = true
	}
}

// WithObserver sets the receiver of lifecycle events.
func WithObserver(observer Observer) Option {
	return func(c *Config) {
		if observer == nil {
			return
		}
		c.Observer = observer
		c.instrumented = true
	}
}

// WithLeakCheck reports guards that become unreachable without being dropped
// or consumed. The action is not run for a leaked guard.
func WithLeakCheck() Option {
	return func(c *Config) {
		c.LeakCheck = true
		c.instrumented = true
	}
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
