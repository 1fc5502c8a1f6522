package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/hookcfg/internal/project"
)

func TestBuildShowOutput(t *testing.T) {
	dir := writeRepo(t, goodManifest, goodSetupCfg+"\n[aliases]\ntest = pytest\n")

	p, err := project.Load(dir, "")
	require.NoError(t, err)

	out := buildShowOutput(p)

	require.NotNil(t, out.Manifest)
	require.Len(t, out.Manifest.Repos, 1)
	assert.Equal(t, "https://github.com/pycqa/flake8", out.Manifest.Repos[0].Repo)
	assert.Equal(t, []string{"flake8"}, out.Manifest.Repos[0].Hooks)

	require.NotNil(t, out.Lint)
	assert.Equal(t, 120, out.Lint.MaxLineLength)
	assert.Equal(t, []string{"E20", "W503"}, out.Lint.Ignore)

	assert.Nil(t, out.Isort, "no isort settings in this fixture")

	require.Len(t, out.Aliases, 1)
	assert.Equal(t, aliasJSON{Name: "test", Command: "pytest"}, out.Aliases[0])
}
