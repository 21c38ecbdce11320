package threadpool

import (
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/threadpool/metrics"
)

// config holds Pool configuration.
type config struct {
	// Workers defines the number of worker goroutines.
	// Zero (default) selects runtime.NumCPU().
	Workers uint

	// Name labels log entries of the pool.
	// Default: "threadpool"
	Name string

	// Logger receives lifecycle and diagnostic entries.
	// Default: a logrus logger writing to io.Discard.
	Logger logrus.FieldLogger

	// Metrics provides instruments for task and queue accounting.
	// Default: metrics.NoopProvider.
	Metrics metrics.Provider
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		Workers: 0, // runtime.NumCPU()
		Name:    Namespace,
		Logger:  discardLogger(),
		Metrics: metrics.NewNoopProvider(),
	}
}

// validateConfig checks invariants and resolves the worker count default.
func validateConfig(cfg *config) error {
	if cfg.Workers == 0 {
		cfg.Workers = uint(runtime.NumCPU())
	}
	if cfg.Name == "" {
		return errorc.With(ErrInvalidConfig, errorc.String("", "pool name must not be empty"))
	}
	if cfg.Logger == nil {
		cfg.Logger = discardLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopProvider()
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Option configures a Pool. Use New(opts...) to construct a Pool via options.
type Option func(*config) error

// WithWorkers sets the number of worker goroutines. Zero selects runtime.NumCPU().
func WithWorkers(n uint) Option {
	return func(cfg *config) error { cfg.Workers = n; return nil }
}

// WithName sets the name attached to the pool's log entries.
func WithName(name string) Option {
	return func(cfg *config) error {
		if name == "" {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithName requires a non-empty name"))
		}
		cfg.Name = name
		return nil
	}
}

// WithLogger routes the pool's log entries to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *config) error {
		if l == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithLogger requires a non-nil logger"))
		}
		cfg.Logger = l
		return nil
	}
}

// WithMetrics sets the metrics provider. See the metrics package for the built-in providers.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithSettings applies settings loaded from a configuration file.
// Zero-valued fields leave the corresponding option untouched.
func WithSettings(s Settings) Option {
	return func(cfg *config) error {
		if s.Workers > 0 {
			cfg.Workers = s.Workers
		}
		if s.Name != "" {
			cfg.Name = s.Name
		}
		return nil
	}
}
