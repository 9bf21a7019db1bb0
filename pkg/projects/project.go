// Package projects defines the canonical project record shown on the portfolio
// and the pure operations over lists of them: merging a remote listing with the
// bundled fallback, client-side filtering, tag listing and ordering.
//
// Nothing in this package performs I/O; every function returns a fresh slice
// and leaves its inputs untouched.
package projects

import (
	"github.com/agentstation/utc"
)

// Project is one showcased project, regardless of where it came from.
type Project struct {
	Slug        string    `json:"slug" yaml:"slug"`
	Title       string    `json:"title" yaml:"title"`
	Summary     string    `json:"summary" yaml:"summary"`
	Description string    `json:"description" yaml:"description"`
	Tech        []string  `json:"tech" yaml:"tech"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Code        *string   `json:"code,omitempty" yaml:"code,omitempty"`
	Live        *string   `json:"live,omitempty" yaml:"live,omitempty"`
	Image       *string   `json:"image,omitempty" yaml:"image,omitempty"`
	Stars       *int      `json:"stars,omitempty" yaml:"stars,omitempty"`
	Updated     *utc.Time `json:"updated,omitempty" yaml:"updated,omitempty"`
	Language    *string   `json:"language,omitempty" yaml:"language,omitempty"`
	Fork        *bool     `json:"fork,omitempty" yaml:"fork,omitempty"`
	Archived    *bool     `json:"archived,omitempty" yaml:"archived,omitempty"`
}

// StarCount returns the star count, treating an absent value as zero.
func (p Project) StarCount() int {
	if p.Stars == nil {
		return 0
	}
	return *p.Stars
}

// IsFork reports whether the project is flagged as a fork.
func (p Project) IsFork() bool {
	return p.Fork != nil && *p.Fork
}

// IsArchived reports whether the project is flagged as archived.
func (p Project) IsArchived() bool {
	return p.Archived != nil && *p.Archived
}

// HasTag reports whether the project carries tag.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Slugs returns the slugs of list in order.
func Slugs(list []Project) []string {
	slugs := make([]string, len(list))
	for i, p := range list {
		slugs[i] = p.Slug
	}
	return slugs
}

// FindBySlug returns the project with the given slug.
func FindBySlug(list []Project, slug string) (Project, bool) {
	for _, p := range list {
		if p.Slug == slug {
			return p, true
		}
	}
	return Project{}, false
}
