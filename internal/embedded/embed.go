// Package embedded bundles the static fallback project list into the binary.
package embedded

import (
	"embed"

	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

// ProjectsFile is the name of the bundled list inside FS.
const ProjectsFile = "projects.yaml"

// FS embeds the fallback project list at build time.
//
//go:embed projects.yaml
var FS embed.FS

// Local returns the bundled list as a Local source.
func Local() *sources.File {
	return sources.NewFS(sources.EmbeddedID, FS, ProjectsFile)
}
