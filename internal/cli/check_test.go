// Tests the check command's core path: load, run checks, render results.
package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/hookcfg/internal/config"
	"github.com/ariel-frischer/hookcfg/internal/progress"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Color:         "never",
		ManifestName:  ".pre-commit-config.yaml",
		WatchDebounce: 250,
	}
}

func writeRepo(t *testing.T, manifest, setupCfg string) string {
	t.Helper()
	dir := t.TempDir()
	if manifest != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".pre-commit-config.yaml"), []byte(manifest), 0o644))
	}
	if setupCfg != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.cfg"), []byte(setupCfg), 0o644))
	}
	return dir
}

const goodManifest = `repos:
  - repo: https://github.com/pycqa/flake8
    rev: 6.0.0
    hooks:
      - id: flake8
`

const goodSetupCfg = `[flake8]
ignore = E20,W503
max-line-length = 120
`

func TestExecuteCheck_Valid(t *testing.T) {
	dir := writeRepo(t, goodManifest, goodSetupCfg)

	result, p, err := executeCheck(dir, testSettings(), false, false)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Len(t, p.Files(), 2)
}

func TestExecuteCheck_InvalidManifest(t *testing.T) {
	badManifest := `repos:
  - repo: https://github.com/pycqa/flake8
    hooks:
      - id: flake8
`
	dir := writeRepo(t, badManifest, "")

	result, _, err := executeCheck(dir, testSettings(), false, false)
	require.NoError(t, err)
	require.False(t, result.Valid)
	assert.Equal(t, "repos[0].rev", result.Errors[0].Path)
}

func TestExecuteCheck_EmptyDirIsMissingFile(t *testing.T) {
	_, _, err := executeCheck(t.TempDir(), testSettings(), false, false)
	require.Error(t, err)
	assert.Equal(t, ExitMissingFile, ExitCode(err))
}

func TestExecuteCheck_ManifestOnly(t *testing.T) {
	badSetupCfg := "[flake8]\nmax-line-length = -5\n"
	dir := writeRepo(t, goodManifest, badSetupCfg)

	result, _, err := executeCheck(dir, testSettings(), true, false)
	require.NoError(t, err)
	assert.True(t, result.Valid, "lint errors must be skipped with --manifest-only")
}

func TestExecuteCheck_StrictRevs(t *testing.T) {
	manifest := `repos:
  - repo: https://github.com/pycqa/flake8
    rev: main
    hooks:
      - id: flake8
`
	dir := writeRepo(t, manifest, "")

	result, _, err := executeCheck(dir, testSettings(), false, true)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}

func TestPrintResult(t *testing.T) {
	dir := writeRepo(t, goodManifest, "[flake8]\nmax-line-length = 0\n")

	result, p, err := executeCheck(dir, testSettings(), false, false)
	require.NoError(t, err)

	var buf bytes.Buffer
	symbols := progress.Symbols{Checkmark: "[OK]", Failure: "[FAIL]"}
	printResult(&buf, p, result, symbols)

	out := buf.String()
	assert.Contains(t, out, "[OK] "+filepath.Join(dir, ".pre-commit-config.yaml"))
	assert.Contains(t, out, "[FAIL] "+filepath.Join(dir, "setup.cfg"))
	assert.Contains(t, out, "max-line-length")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitMissingFile, ExitCode(NewExitError(ExitMissingFile, os.ErrNotExist)))
	// Unwrapped errors only come out of cobra's argument parsing.
	assert.Equal(t, ExitInvalidArguments, ExitCode(assert.AnError))
}
