package pyproject

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
)

func writePyproject(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMergeIsort_NoFile(t *testing.T) {
	base := &inicfg.IsortSettings{Profile: "black"}
	s, found, err := MergeIsort(t.TempDir(), base)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Same(t, base, s)
}

func TestMergeIsort_NoTable(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[tool.black]\nline-length = 120\n")

	s, found, err := MergeIsort(dir, nil)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, s)
}

func TestMergeIsort_OverlaysOntoBase(t *testing.T) {
	dir := t.TempDir()
	path := writePyproject(t, dir, `[tool.isort]
profile = "black"
skip_gitignore = true
`)

	base := &inicfg.IsortSettings{
		Profile:        "django",
		DefaultSection: "THIRDPARTY",
		Source:         "setup.cfg",
	}
	s, found, err := MergeIsort(dir, base)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "black", s.Profile, "pyproject wins over INI sources")
	assert.True(t, s.SkipGitignore)
	assert.Equal(t, "THIRDPARTY", s.DefaultSection, "keys absent from pyproject keep the INI value")
	assert.Equal(t, path, s.Source)
}

func TestMergeIsort_FreshRecord(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, `[tool.isort]
sections = ["FUTURE", "STDLIB", "THIRDPARTY"]
force_to_top = true
`)

	s, found, err := MergeIsort(dir, nil)
	require.NoError(t, err)
	assert.True(t, found)
	require.NotNil(t, s)
	assert.Equal(t, []string{"FUTURE", "STDLIB", "THIRDPARTY"}, s.Sections)
	assert.True(t, s.ForceToTop)
	assert.False(t, s.SkipGitignore)
}

func TestMergeIsort_ParseErrorHasLocation(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[tool.isort\nprofile = black\n")

	_, _, err := MergeIsort(dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), FileName)
}
