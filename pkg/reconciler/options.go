package reconciler

import (
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// options configures a reconciler.
type options struct {
	localOnly bool
	warning   string
}

func defaultOptions() *options {
	return &options{
		warning: constants.RemoteUnavailableWarning,
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithLocalOnly skips the remote source entirely.
func WithLocalOnly(enabled bool) Option {
	return func(o *options) error {
		o.localOnly = enabled
		return nil
	}
}

// WithWarning replaces the advisory shown when the remote is unavailable.
func WithWarning(msg string) Option {
	return func(o *options) error {
		if msg == "" {
			return &errors.ValidationError{Field: "warning", Message: "cannot be empty"}
		}
		o.warning = msg
		return nil
	}
}
