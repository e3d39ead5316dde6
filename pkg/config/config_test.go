package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Keep discovery away from the real user config.
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("LLMLAUNCH_CONFIG", "")
	t.Setenv("LLMLAUNCH_PYTHON", "")

	return dir
}

func writeConfig(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "test-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestBuiltinDefaultsWhenNoFile(t *testing.T) {
	chdirTemp(t)

	m := NewManager("")
	require.NoError(t, m.LoadConfig())

	cfg := m.GetConfig()
	assert.Equal(t, DefaultModel, cfg.Defaults.Model)
	assert.Equal(t, "80", cfg.Defaults.MaxLength)
	assert.Equal(t, "python3", cfg.Launcher.Python)
	assert.False(t, cfg.Launcher.AlwaysForwardDataset)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadOverridesAndPreservesDefaults(t *testing.T) {
	dir := chdirTemp(t)
	path := writeConfig(t, dir, `
defaults:
  model: distilgpt2
launcher:
  always_forward_dataset: true
`)

	m := NewManager(path)
	require.NoError(t, m.LoadConfig())

	cfg := m.GetConfig()
	assert.Equal(t, "distilgpt2", cfg.Defaults.Model)
	assert.True(t, cfg.Launcher.AlwaysForwardDataset)
	assert.Equal(t, "80", cfg.Defaults.MaxLength)
	assert.Equal(t, "python3", cfg.Launcher.Python)
}

func TestExplicitConfigMustExist(t *testing.T) {
	dir := chdirTemp(t)

	m := NewManager(filepath.Join(dir, "missing.yaml"))
	err := m.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDiscoversConfigInWorkingDirectory(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("defaults:\n  model: distilgpt2\n"), 0o644))

	m := NewManager("")
	require.NoError(t, m.LoadConfig())
	assert.Equal(t, "distilgpt2", m.GetConfig().Defaults.Model)
}

func TestValidationRejectsEmptyModel(t *testing.T) {
	dir := chdirTemp(t)
	path := writeConfig(t, dir, "defaults:\n  model: \"\"\n")

	m := NewManager(path)
	err := m.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defaults.model")
}

func TestValidationRejectsBadDatabasePort(t *testing.T) {
	dir := chdirTemp(t)
	path := writeConfig(t, dir, "database:\n  enabled: true\n  port: 0\n")

	m := NewManager(path)
	err := m.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.port")
}

func TestPythonEnvOverride(t *testing.T) {
	dir := chdirTemp(t)
	path := writeConfig(t, dir, "launcher:\n  python: python3\n")
	t.Setenv("LLMLAUNCH_PYTHON", "/usr/local/bin/python3.12")

	m := NewManager(path)
	require.NoError(t, m.LoadConfig())
	assert.Equal(t, "/usr/local/bin/python3.12", m.GetConfig().Launcher.Python)
}

func TestConfigEnvSelectsFile(t *testing.T) {
	dir := chdirTemp(t)
	path := writeConfig(t, dir, "defaults:\n  model: distilgpt2\n")
	t.Setenv("LLMLAUNCH_CONFIG", path)

	m := NewManager("")
	require.NoError(t, m.LoadConfig())
	assert.Equal(t, "distilgpt2", m.GetConfig().Defaults.Model)
}
