package projects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikeshgamal24/portfolio/pkg/errors"
	"github.com/nikeshgamal24/portfolio/pkg/projects"
)

func TestParseSequence(t *testing.T) {
	data := []byte(`
- slug: bloodlink
  title: Bloodlink
  summary: Blood donation platform
  description: Connects donors with blood banks
  tech: [PHP, MySQL]
  tags: [php, web-app]
  code: https://github.com/nikeshgamal24/Bloodlink
- slug: churn-modelling-ann
  title: Churn Modelling ANN
`)

	list, err := projects.Parse("inline", data)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "bloodlink", list[0].Slug)
	assert.Equal(t, []string{"PHP", "MySQL"}, list[0].Tech)
	require.NotNil(t, list[0].Code)
	assert.Equal(t, "https://github.com/nikeshgamal24/Bloodlink", *list[0].Code)
	assert.Nil(t, list[0].Live)

	assert.NotNil(t, list[1].Tags, "absent tags normalise to an empty list")
	assert.Empty(t, list[1].Tags)
}

func TestParseMappingAndJSON(t *testing.T) {
	list, err := projects.Parse("mapping", []byte("projects:\n  - slug: a\n  - slug: b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, projects.Slugs(list))

	list, err = projects.Parse("json", []byte(`[{"slug":"x","title":"X","stars":3}]`))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].StarCount())
	assert.Equal(t, "X", list[0].Title)
}

func TestParseTitleDefaultsToSlug(t *testing.T) {
	list, err := projects.Parse("inline", []byte("- slug: lonely\n"))
	require.NoError(t, err)
	assert.Equal(t, "lonely", list[0].Title)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := projects.Parse("dupes", []byte("- slug: a\n- slug: a\n"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = projects.Parse("noslug", []byte("- title: Nameless\n"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	_, err = projects.Parse("garbage", []byte("projects: [unterminated"))
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}
