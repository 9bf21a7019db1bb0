package projects

import (
	"fmt"
	"sort"
	"strings"
)

// Query is what a viewer has typed and selected.
type Query struct {
	// Term is matched case-insensitively against title, summary and description.
	Term string `json:"term"`
	// Tags selects projects carrying at least one of these tags.
	Tags []string `json:"tags"`
}

// IsEmpty reports whether the query filters nothing.
func (q Query) IsEmpty() bool {
	return q.Term == "" && len(q.Tags) == 0
}

// Filter returns the projects matching both the text term and the tag
// selection, in input order. An empty term matches everything, as does an
// empty tag selection.
func Filter(list []Project, q Query) []Project {
	term := strings.ToLower(q.Term)

	selected := make(map[string]struct{}, len(q.Tags))
	for _, tag := range q.Tags {
		selected[tag] = struct{}{}
	}

	filtered := make([]Project, 0, len(list))
	for _, p := range list {
		if matchesTerm(p, term) && matchesTags(p, selected) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesTerm(p Project, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Summary), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Description), lowerTerm)
}

func matchesTags(p Project, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	for _, tag := range p.Tags {
		if _, ok := selected[tag]; ok {
			return true
		}
	}
	return false
}

// UniqueTags returns every tag used by list, de-duplicated and sorted.
func UniqueTags(list []Project) []string {
	set := make(map[string]struct{})
	for _, p := range list {
		for _, tag := range p.Tags {
			set[tag] = struct{}{}
		}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// ToggleTag adds tag to selected if absent and removes it if present.
func ToggleTag(selected []string, tag string) []string {
	out := make([]string, 0, len(selected)+1)
	removed := false
	for _, t := range selected {
		if t == tag {
			removed = true
			continue
		}
		out = append(out, t)
	}
	if !removed {
		out = append(out, tag)
	}
	return out
}

// CountLabel renders the "n of m projects" line shown above the grid.
func CountLabel(shown, total int) string {
	return fmt.Sprintf("%d of %d projects", shown, total)
}

// SortByStars orders list by star count, highest first. Ties keep their
// relative order.
func SortByStars(list []Project) []Project {
	sorted := append([]Project(nil), list...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StarCount() > sorted[j].StarCount()
	})
	return sorted
}
