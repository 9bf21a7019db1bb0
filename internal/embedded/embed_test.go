package embedded_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/internal/embedded"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
	"github.com/nikeshgamal24/portfolio/pkg/sources"
)

func TestBundledListIsValid(t *testing.T) {
	local := embedded.Local()
	assert.Equal(t, sources.EmbeddedID, local.ID())

	list, err := local.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, list, "the fallback list must never be empty")
	require.NoError(t, projects.Validate(list))

	for _, p := range list {
		assert.NotEmpty(t, p.Title, "project %s has no title", p.Slug)
		assert.NotNil(t, p.Tags, "project %s has nil tags", p.Slug)
	}
}

func TestBundledListHasKnownProjects(t *testing.T) {
	list, err := embedded.Local().Load(context.Background())
	require.NoError(t, err)

	p, ok := projects.FindBySlug(list, "Bloodlink")
	require.True(t, ok)
	assert.Contains(t, p.Tags, "php")
	require.NotNil(t, p.Code)
}
