package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwiii/pipeline/internal/constants"
	pipelineerrors "github.com/wwiii/pipeline/internal/errors"
)

// isolateHome points the home directory at a temp dir so tests never read a
// real ~/.pipeline/config.yaml.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func writeProjectConfig(t *testing.T, workspaceRoot, content string) {
	t.Helper()
	dir := ProjectConfigDir(workspaceRoot)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.ConfigFileName), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	isolateHome(t)
	workspace := t.TempDir()

	cfg, err := Load(workspace)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Workspace.Root)
	assert.Equal(t, constants.DefaultCommandTimeout, cfg.Workspace.CommandTimeout)
	assert.InDelta(t, constants.DefaultCoverageThreshold, cfg.Coverage.Threshold, 0.001)
	assert.Equal(t, constants.DefaultLintCommand, cfg.Gates.Lint)
	assert.Equal(t, constants.DefaultFormatCheckCommand, cfg.Gates.FormatCheck)
	assert.Equal(t, constants.DefaultTypeCheckCommand, cfg.Gates.TypeCheck)
	assert.Equal(t, constants.DefaultTestCommand, cfg.Gates.Test)
	assert.Equal(t, constants.DefaultTestCoverageCommand, cfg.Gates.TestCoverage)
	assert.Equal(t, constants.DefaultContainerEngine, cfg.Container.Engine)
	assert.Equal(t, constants.DefaultImageName, cfg.Container.Image)
	assert.Equal(t, constants.DefaultHealthURL, cfg.Container.HealthURL)
	assert.Equal(t, constants.DefaultHostPort, cfg.Container.HostPort)
	assert.Equal(t, constants.DefaultContainerPort, cfg.Container.Port)
	assert.Equal(t, constants.DefaultSettleInterval, cfg.Container.SettleInterval)
	assert.Equal(t, constants.DefaultProbeTimeout, cfg.Container.ProbeTimeout)
	assert.Empty(t, cfg.Registry.Endpoint)
}

func TestLoadProjectConfigOverridesDefaults(t *testing.T) {
	isolateHome(t)
	workspace := t.TempDir()

	writeProjectConfig(t, workspace, `
coverage:
  threshold: 70
gates:
  lint: "make lint"
container:
  settle_interval: 2s
`)

	cfg, err := Load(workspace)
	require.NoError(t, err)

	assert.InDelta(t, 70.0, cfg.Coverage.Threshold, 0.001)
	assert.Equal(t, "make lint", cfg.Gates.Lint)
	assert.Equal(t, 2*time.Second, cfg.Container.SettleInterval)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, constants.DefaultTestCommand, cfg.Gates.Test)
	assert.Equal(t, constants.DefaultImageName, cfg.Container.Image)
}

func TestLoadGlobalConfigThenProjectOverride(t *testing.T) {
	home := isolateHome(t)
	workspace := t.TempDir()

	globalDir := filepath.Join(home, constants.PipelineHome)
	require.NoError(t, os.MkdirAll(globalDir, 0o750))
	require.NoError(t, os.WriteFile(
		filepath.Join(globalDir, constants.ConfigFileName),
		[]byte("coverage:\n  threshold: 60\ncontainer:\n  image: global-app\n"),
		0o600,
	))

	writeProjectConfig(t, workspace, "coverage:\n  threshold: 95\n")

	cfg, err := Load(workspace)
	require.NoError(t, err)

	// Project wins over global for the same key.
	assert.InDelta(t, 95.0, cfg.Coverage.Threshold, 0.001)
	// Global still applies where the project is silent.
	assert.Equal(t, "global-app", cfg.Container.Image)
}

func TestLoadEnvironmentOverridesFiles(t *testing.T) {
	isolateHome(t)
	workspace := t.TempDir()

	writeProjectConfig(t, workspace, "coverage:\n  threshold: 70\n")
	t.Setenv("PIPELINE_COVERAGE_THRESHOLD", "92.5")
	t.Setenv("PIPELINE_REGISTRY_ENDPOINT", "registry.example.com:5000")

	cfg, err := Load(workspace)
	require.NoError(t, err)

	assert.InDelta(t, 92.5, cfg.Coverage.Threshold, 0.001)
	assert.Equal(t, "registry.example.com:5000", cfg.Registry.Endpoint)
}

func TestLoadMalformedProjectConfig(t *testing.T) {
	isolateHome(t)
	workspace := t.TempDir()

	writeProjectConfig(t, workspace, "coverage: [not a mapping\n")

	_, err := Load(workspace)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolateHome(t)
	workspace := t.TempDir()

	writeProjectConfig(t, workspace, "coverage:\n  threshold: 150\n")

	_, err := Load(workspace)
	require.ErrorIs(t, err, pipelineerrors.ErrConfigInvalidCoverage)
}
