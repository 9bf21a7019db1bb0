// Package sources defines the contracts for where project records come from.
//
// A Remote source may fail; it reports failure through the Result it returns
// instead of an error, so callers always receive a usable value. A Local
// source is the bundled fallback and is expected to succeed.
//
// Example usage:
//
//	remote := github.NewSource(client, filters)
//	res := remote.Fetch(ctx, "nikeshgamal24")
//	if !res.Available {
//	    // fall back to the local list
//	}
package sources

import (
	"context"
	"slices"

	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// ID identifies a source in logs and results.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Common source IDs.
const (
	GitHubID   ID = "github"
	CachedID   ID = "cached"
	EmbeddedID ID = "embedded"
	FileID     ID = "file"
)

// IDs returns all known source IDs.
func IDs() []ID {
	return []ID{GitHubID, CachedID, EmbeddedID, FileID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Remote fetches a user's project records from a service that may be
// unreachable. Fetch never returns an error: every failure is folded into
// an unavailable Result.
type Remote interface {
	ID() ID
	Fetch(ctx context.Context, username string) Result
}

// Local returns the static fallback list.
type Local interface {
	ID() ID
	Load(ctx context.Context) ([]projects.Project, error)
}

// Result is the outcome of a remote fetch.
type Result struct {
	// Projects is the filtered, ordered remote listing. Empty when unavailable.
	Projects []projects.Project
	// Available is false when the remote could not be used at all.
	Available bool
	// Reason holds the collapsed failure. It is for diagnostics only.
	Reason error
}

// Unavailable returns the sentinel result for a failed fetch.
func Unavailable(reason error) Result {
	return Result{Reason: reason}
}

// Available wraps a successful listing. A nil list becomes an empty one.
func Available(list []projects.Project) Result {
	if list == nil {
		list = []projects.Project{}
	}
	return Result{Projects: list, Available: true}
}

// Usable reports whether the result carries remote records worth merging.
func (r Result) Usable() bool {
	return r.Available && len(r.Projects) > 0
}

// RemoteFunc adapts a function to the Remote interface.
type RemoteFunc func(ctx context.Context, username string) Result

// ID implements Remote.
func (f RemoteFunc) ID() ID { return GitHubID }

// Fetch implements Remote.
func (f RemoteFunc) Fetch(ctx context.Context, username string) Result {
	return f(ctx, username)
}
