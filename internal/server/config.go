package server

import (
	"net"
	"strconv"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORSOrigins lists accepted origins. Empty allows every origin.
	CORSOrigins []string

	// SearchDebounce is the quiet period before a live search term applies.
	SearchDebounce time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		PathPrefix:     "/api/v1",
		CORSOrigins:    []string{},
		SearchDebounce: constants.DefaultDebounceDelay,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   constants.DefaultHTTPTimeout + 5*time.Second,
		IdleTimeout:    120 * time.Second,
	}
}

// Addr returns host:port for http.Server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
