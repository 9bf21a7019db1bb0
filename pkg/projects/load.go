package projects

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
)

// listFile is the on-disk shape of a project list.
type listFile struct {
	Projects []Project `yaml:"projects"`
}

// Parse decodes a project list from YAML or JSON. The document is either a
// bare sequence or a mapping with a "projects" key. name is used in errors.
func Parse(name string, data []byte) ([]Project, error) {
	var list []Project
	if err := yaml.Unmarshal(data, &list); err != nil {
		var file listFile
		if ferr := yaml.Unmarshal(data, &file); ferr != nil {
			return nil, errors.WrapParse("yaml", name, ferr)
		}
		list = file.Projects
	}

	for i := range list {
		normalize(&list[i])
	}

	if err := Validate(list); err != nil {
		return nil, err
	}
	return list, nil
}

// Validate checks that every project has a slug and that slugs are unique.
func Validate(list []Project) error {
	seen := make(map[string]int, len(list))
	for i, p := range list {
		if p.Slug == "" {
			return errors.NewValidationError("slug", i, "project has no slug")
		}
		if prev, dup := seen[p.Slug]; dup {
			return errors.NewValidationError("slug", p.Slug,
				fmt.Sprintf("duplicate slug %q at positions %d and %d", p.Slug, prev, i))
		}
		seen[p.Slug] = i
	}
	return nil
}

// normalize fills in empty sequences so JSON output never carries null lists.
func normalize(p *Project) {
	if p.Tech == nil {
		p.Tech = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Title == "" {
		p.Title = p.Slug
	}
}
