// Package constants provides shared constants used throughout the portfolio codebase.
// This includes timeouts, limits, file permissions, and default values that
// should be consistent across the library, the CLI and the HTTP server.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the GitHub API
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// DefaultRefreshInterval is the default interval between automatic project refreshes
	DefaultRefreshInterval = 1 * time.Hour

	// DefaultCacheTTL is how long an available remote listing is reused.
	// Unauthenticated GitHub clients get 60 requests per hour.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultDebounceDelay is the delay between the last search keystroke and the
	// moment the search term is applied.
	DefaultDebounceDelay = 300 * time.Millisecond

	// ShutdownTimeout bounds graceful shutdown of the server and the CLI.
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// GitHub API constants
const (
	// GitHubAPIURL is the default base URL of the GitHub REST API.
	GitHubAPIURL = "https://api.github.com"

	// GitHubAcceptHeader pins the v3 media type.
	GitHubAcceptHeader = "application/vnd.github.v3+json"

	// GitHubPageSize is the fixed page size used when listing repositories.
	GitHubPageSize = 100

	// DefaultUsername is the account listed when none is configured.
	DefaultUsername = "nikeshgamal24"

	// UserAgent identifies this client to remote APIs.
	UserAgent = "portfolio-reconciler"
)

// Display constants
const (
	// NoDescription replaces an empty repository description.
	NoDescription = "No description available"

	// RemoteUnavailableWarning is shown next to the fallback list.
	RemoteUnavailableWarning = "Failed to load projects from GitHub. Showing manual projects instead."
)
