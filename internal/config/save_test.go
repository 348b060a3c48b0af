package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipelineerrors "github.com/wwiii/pipeline/internal/errors"
)

func TestWriteDefaultCreatesFile(t *testing.T) {
	isolateHome(t)
	workspace := t.TempDir()
	path := ProjectConfigPath(workspace)

	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Pipeline runner configuration.")
	assert.Contains(t, string(data), "threshold: 85")

	// The generated file loads back as a valid config.
	cfg, err := Load(workspace)
	require.NoError(t, err)
	assert.Equal(t, *DefaultConfig(), *cfg)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	workspace := t.TempDir()
	path := ProjectConfigPath(workspace)

	require.NoError(t, WriteDefault(path))
	err := WriteDefault(path)
	require.ErrorIs(t, err, pipelineerrors.ErrConfigExists)
}
