package application

import (
	"github.com/rs/zerolog"

	"github.com/nikeshgamal24/portfolio"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    PortfolioFunc: func() (portfolio.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := projects.NewCommand(mock)
type Mock struct {
	PortfolioFunc    func() (portfolio.Client, error)
	WithOptionsFunc  func(opts ...portfolio.Option) (portfolio.Client, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Portfolio returns a client using the mock function or nil.
func (m *Mock) Portfolio() (portfolio.Client, error) {
	if m.PortfolioFunc != nil {
		return m.PortfolioFunc()
	}
	return nil, nil
}

// PortfolioWithOptions returns a client using the mock function, falling
// back to Portfolio.
func (m *Mock) PortfolioWithOptions(opts ...portfolio.Option) (portfolio.Client, error) {
	if m.WithOptionsFunc != nil {
		return m.WithOptionsFunc(opts...)
	}
	return m.Portfolio()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Application at compile time.
var _ Application = (*Mock)(nil)
