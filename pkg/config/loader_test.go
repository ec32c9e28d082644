package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadPartialYAMLMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reactor.yaml")
	writeFile(t, path, "max_iterations: 5\nparallel_tool_execution: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.MaxIterations)
	require.False(t, cfg.ParallelToolExecution)
	require.Equal(t, 4096, cfg.ContextWindowTokens)
	require.Equal(t, 300*time.Second, cfg.SessionTimeout)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("REACTOR_MAX_ITER", "7")
	dir := t.TempDir()
	path := filepath.Join(dir, "reactor.yaml")
	writeFile(t, path, "max_iterations: ${REACTOR_MAX_ITER}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.MaxIterations)
}

func TestLoadRejectsOverCeiling(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reactor.yaml")
	writeFile(t, path, "max_iterations: 999\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reactor.yaml")
	writeFile(t, path, "max_iterations: [unterminated\n")

	_, err := Load(path)
	require.Error(t, err)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}
