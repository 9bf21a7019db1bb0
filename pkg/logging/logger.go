// Package logging provides structured logging for the portfolio system using zerolog.
// Terminals get a human-readable console writer; pipes, files and servers get JSON.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("username", "octocat").Msg("Fetching repositories")
//
//	ctx := logging.WithUsername(ctx, "octocat")
//	logging.FromContext(ctx).Warn().Msg("GitHub rate limit exceeded")
package logging

import (
	"os"
	"sync/atomic"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the global logger, replaced by the CLI once flags are parsed.
var defaultLogger atomic.Pointer[zerolog.Logger]

func init() {
	logger := NewLoggerFromConfig(envConfig())
	defaultLogger.Store(&logger)
}

// envConfig builds the startup configuration from LOG_LEVEL, LOG_FORMAT,
// LOG_OUTPUT and NO_COLOR. DEBUG=1 without LOG_LEVEL means debug.
func envConfig() *Config {
	cfg := DefaultConfig()
	switch {
	case os.Getenv("LOG_LEVEL") != "":
		cfg.Level = os.Getenv("LOG_LEVEL")
	case os.Getenv("DEBUG") != "":
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		cfg.Output = output
	}
	return cfg
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return defaultLogger.Load()
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger.Store(&logger)
	log.Logger = logger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return Default().Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return Default().Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return Default().Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return Default().Error()
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
