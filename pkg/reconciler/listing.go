package reconciler

import (
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Listing is what a viewer sees for one query: the filtered projects, the
// count label and the tags available for selection.
type Listing struct {
	Projects        []projects.Project `json:"projects" yaml:"projects"`
	Total           int                `json:"total" yaml:"total"`
	Count           int                `json:"count" yaml:"count"`
	Label           string             `json:"label" yaml:"label"`
	Tags            []string           `json:"tags" yaml:"tags"`
	Query           projects.Query     `json:"query" yaml:"query"`
	Warning         string             `json:"warning,omitempty" yaml:"warning,omitempty"`
	RemoteAvailable bool               `json:"remote_available" yaml:"remote_available"`
}

// Listing filters the result by q.
func (r *Result) Listing(q projects.Query) Listing {
	filtered := projects.Filter(r.Projects, q)
	tags := q.Tags
	if tags == nil {
		tags = []string{}
	}
	return Listing{
		Projects:        filtered,
		Total:           len(r.Projects),
		Count:           len(filtered),
		Label:           projects.CountLabel(len(filtered), len(r.Projects)),
		Tags:            projects.UniqueTags(r.Projects),
		Query:           projects.Query{Term: q.Term, Tags: tags},
		Warning:         r.Warning,
		RemoteAvailable: r.RemoteAvailable,
	}
}
