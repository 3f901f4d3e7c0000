package builder

import (
	"io"
	"log/slog"

	"github.com/roach88/tagmerge/internal/plan"
)

// Options configures plan building.
type Options struct {
	// Policy is recorded in the plan and applied at execution time.
	Policy plan.Policy

	// NormalizeKeys compares key strings after Unicode NFC normalization.
	// Off by default: key strings then match byte for byte.
	NormalizeKeys bool

	// Logger receives debug diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithPolicy sets the conflict resolution policy recorded in the plan.
func WithPolicy(p plan.Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithKeyNormalization enables NFC normalization of key strings.
func WithKeyNormalization(enabled bool) Option {
	return func(o *Options) { o.NormalizeKeys = enabled }
}

// WithLogger sets the logger for debug diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func newOptions(opts []Option) Options {
	o := Options{Policy: plan.DefaultPolicy}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
