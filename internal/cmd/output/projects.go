package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nikeshgamal24/portfolio/internal/utils/ptr"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// maxSummary is the summary width in wide tables.
const maxSummary = 60

// ProjectsToTableData converts projects to table rows. Wide adds links and
// the summary. Update times are relative to now.
func ProjectsToTableData(list []projects.Project, wide bool, now time.Time) Data {
	headers := []string{"Slug", "Title", "Stars", "Language", "Tags", "Updated"}
	align := []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Code", "Live", "Summary")
		align = append(align, AlignLeft, AlignLeft, AlignLeft)
	}

	rows := make([][]string, 0, len(list))
	for _, p := range list {
		row := []string{
			p.Slug,
			p.Title,
			stars(p),
			orDash(ptr.Deref(p.Language)),
			orDash(strings.Join(p.Tags, ", ")),
			updated(p, now),
		}
		if wide {
			row = append(row,
				orDash(ptr.Deref(p.Code)),
				orDash(ptr.Deref(p.Live)),
				orDash(truncate(p.Summary, maxSummary)),
			)
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// ProjectDetails converts one project to a property table.
func ProjectDetails(p projects.Project, now time.Time) Data {
	rows := [][]string{
		{"Slug", p.Slug},
		{"Title", p.Title},
		{"Summary", orDash(p.Summary)},
		{"Description", orDash(p.Description)},
		{"Tech", orDash(strings.Join(p.Tech, ", "))},
		{"Tags", orDash(strings.Join(p.Tags, ", "))},
		{"Code", orDash(ptr.Deref(p.Code))},
		{"Live", orDash(ptr.Deref(p.Live))},
		{"Stars", stars(p)},
		{"Language", orDash(ptr.Deref(p.Language))},
		{"Updated", updated(p, now)},
	}
	return Data{Headers: []string{"Property", "Value"}, Rows: rows}
}

// TagsToTableData lists tags with the number of projects carrying each.
func TagsToTableData(list []projects.Project) Data {
	counts := make(map[string]int)
	for _, p := range list {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}

	tags := projects.UniqueTags(list)
	rows := make([][]string, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, []string{tag, fmt.Sprint(counts[tag])})
	}
	return Data{
		Headers:         []string{"Tag", "Projects"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

func stars(p projects.Project) string {
	if p.Stars == nil {
		return "-"
	}
	return humanize.Comma(int64(*p.Stars))
}

func updated(p projects.Project, now time.Time) string {
	if p.Updated == nil || p.Updated.IsZero() {
		return "-"
	}
	return humanize.RelTime(p.Updated.Time, now, "ago", "from now")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
