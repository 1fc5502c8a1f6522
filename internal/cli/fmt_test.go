// Tests canonical rewriting: idempotence, check-only mode, and that
// scaffolded files parse and pass the checks.
package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/hookcfg/internal/checks"
	"github.com/ariel-frischer/hookcfg/internal/manifest"
	"github.com/ariel-frischer/hookcfg/internal/project"
)

func TestFmt_Idempotent(t *testing.T) {
	dir := writeRepo(t, goodManifest, goodSetupCfg)

	p, err := project.Load(dir, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = applyRewrites(&buf, planRewrites(p), false)
	require.NoError(t, err)

	// A second pass over the canonicalized files changes nothing.
	p2, err := project.Load(dir, "")
	require.NoError(t, err)

	buf.Reset()
	changed, err := applyRewrites(&buf, planRewrites(p2), true)
	require.NoError(t, err)
	assert.Zero(t, changed, "fmt must be idempotent")
	assert.Empty(t, buf.String())
}

func TestFmt_CheckOnlyDoesNotWrite(t *testing.T) {
	// Non-canonical spacing in setup.cfg.
	dir := writeRepo(t, "", "[flake8]\nmax-line-length =    120\nignore = E20 , W503\n")

	p, err := project.Load(dir, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	changed, err := applyRewrites(&buf, planRewrites(p), true)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Contains(t, buf.String(), "would rewrite")

	// The file is untouched, so a fresh plan still reports a change.
	p2, err := project.Load(dir, "")
	require.NoError(t, err)
	buf.Reset()
	changed2, err := applyRewrites(&buf, planRewrites(p2), true)
	require.NoError(t, err)
	assert.Equal(t, 1, changed2)
}

func TestFmt_SharedFileRewrittenOnce(t *testing.T) {
	// [flake8] and [aliases] live in the same setup.cfg; canonicalizing
	// the first rewrites the whole file, so the second must compare
	// against the rewritten bytes and report nothing.
	dir := writeRepo(t, "", "[flake8]\nignore = E20 , W503\nmax-line-length = 120\n\n[aliases]\ntest = pytest\n")

	p, err := project.Load(dir, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	changed, err := applyRewrites(&buf, planRewrites(p), false)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, 1, strings.Count(buf.String(), "rewrote "),
		"one shared file must be reported once")
}

func TestStarterManifest_PassesChecks(t *testing.T) {
	m, err := manifest.Decode(strings.NewReader(starterManifest))
	require.NoError(t, err)

	result := checks.Manifest(m, "starter", checks.Options{StrictRevs: true})
	assert.True(t, result.Valid, "scaffold must pass even the strict checks: %v", result.Errors)
}

func TestStarterSetupCfg_MatchesFixtureScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeStarter(dir))

	p, err := project.Load(dir, "")
	require.NoError(t, err)

	require.NotNil(t, p.Lint)
	assert.Equal(t, 120, p.Lint.MaxLineLength)
	assert.Contains(t, p.Lint.Ignore, "E20")

	require.NotNil(t, p.Isort)
	assert.Equal(t, "black", p.Isort.Profile)
	assert.True(t, p.Isort.SkipGitignore)

	result := checks.Run(p, checks.Options{StrictRevs: true})
	assert.True(t, result.Valid, "scaffold must pass all checks: %v", result.Errors)
}
