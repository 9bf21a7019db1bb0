package github

import (
	"sort"
	"strings"

	"github.com/agentstation/utc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nikeshgamal24/portfolio/internal/utils/ptr"
	"github.com/nikeshgamal24/portfolio/pkg/constants"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

// Title turns a repository name into a display title:
// dashes become spaces and each word starts upper-case.
func Title(name string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(strings.ReplaceAll(name, "-", " "))
}

// ToProject converts a repository into a project record.
func ToProject(repo Repository) projects.Project {
	desc := constants.NoDescription
	if repo.Description != nil && *repo.Description != "" {
		desc = *repo.Description
	}

	tech := []string{}
	if repo.Language != nil && *repo.Language != "" {
		tech = append(tech, *repo.Language)
	}

	tags := append([]string{}, repo.Topics...)

	p := projects.Project{
		Slug:        repo.Name,
		Title:       Title(repo.Name),
		Summary:     desc,
		Description: desc,
		Tech:        tech,
		Tags:        tags,
		Code:        ptr.String(repo.HTMLURL),
		Stars:       ptr.Int(repo.StargazersCount),
		Fork:        ptr.Bool(repo.Fork),
		Archived:    ptr.Bool(repo.Archived),
	}
	if repo.Homepage != nil {
		p.Live = ptr.String(*repo.Homepage)
	}
	if repo.Language != nil {
		p.Language = ptr.String(*repo.Language)
	}
	if !repo.UpdatedAt.IsZero() {
		p.Updated = &utc.Time{Time: repo.UpdatedAt}
	}
	return p
}

// ToProjects filters repos, converts the survivors and orders them by
// stars, highest first. Ties keep API order.
func ToProjects(repos []Repository, filter FilterConfig) []projects.Project {
	kept := filter.Apply(repos)
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].StargazersCount > kept[j].StargazersCount
	})

	list := make([]projects.Project, 0, len(kept))
	for _, repo := range kept {
		list = append(list, ToProject(repo))
	}
	return list
}
