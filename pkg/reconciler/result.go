package reconciler

import (
	"fmt"
	"time"

	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Source tells where the projects of a Result came from.
type Source string

// Result sources.
const (
	// SourceMerged means remote records were merged with the local list.
	SourceMerged Source = "merged"
	// SourceLocal means only the local list was used.
	SourceLocal Source = "local"
)

// Result is the outcome of one reconcile.
type Result struct {
	Username string `json:"username"`

	// Projects is the final de-duplicated list, remote entries first.
	Projects []projects.Project `json:"projects"`

	RemoteAvailable bool   `json:"remote_available"`
	RemoteCount     int    `json:"remote_count"`
	LocalCount      int    `json:"local_count"`
	Source          Source `json:"source"`

	// Warning is non-empty when the remote could not be used.
	Warning string `json:"warning,omitempty"`

	// Reason is the collapsed remote failure, for logs only.
	Reason error `json:"-"`

	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
}

// HasWarning reports whether an advisory should be shown.
func (r *Result) HasWarning() bool {
	return r.Warning != ""
}

// Filter applies q to the reconciled list.
func (r *Result) Filter(q projects.Query) []projects.Project {
	return projects.Filter(r.Projects, q)
}

// Summary returns a one-line description of the result.
func (r *Result) Summary() string {
	if !r.RemoteAvailable && r.Warning != "" {
		return fmt.Sprintf("%d projects (remote unavailable, local fallback) in %v",
			len(r.Projects), r.Duration.Round(time.Millisecond))
	}
	return fmt.Sprintf("%d projects (%d remote, %d local, source %s) in %v",
		len(r.Projects), r.RemoteCount, r.LocalCount, r.Source, r.Duration.Round(time.Millisecond))
}

func (r *Result) finish() {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
}
