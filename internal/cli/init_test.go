package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwiii/pipeline/internal/errors"
)

func TestRunInit_WritesDefaultConfig(t *testing.T) {
	dir := setupWorkspace(t)

	var buf bytes.Buffer
	err := runInit(context.Background(), testCommand(t, "init"), &buf, false)

	require.NoError(t, err)
	path := filepath.Join(dir, ".pipeline", "config.yaml")
	assert.Contains(t, buf.String(), "wrote "+path)

	data, err := os.ReadFile(path) //nolint:gosec // test-owned temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "threshold: 85")
}

func TestRunInit_RefusesToOverwriteWithoutForce(t *testing.T) {
	setupWorkspace(t)

	cmd := testCommand(t, "init")
	var buf bytes.Buffer
	require.NoError(t, runInit(context.Background(), cmd, &buf, false))

	err := runInit(context.Background(), cmd, &buf, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigExists)
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	dir := setupWorkspace(t)

	cmd := testCommand(t, "init")
	var buf bytes.Buffer
	require.NoError(t, runInit(context.Background(), cmd, &buf, false))

	// Corrupt the file, then force a rewrite.
	path := filepath.Join(dir, ".pipeline", "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not yaml"), 0o600))

	require.NoError(t, runInit(context.Background(), cmd, &buf, true))

	data, err := os.ReadFile(path) //nolint:gosec // test-owned temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "threshold: 85")
}

func TestRunInit_JSONOutput(t *testing.T) {
	dir := setupWorkspace(t)

	cmd := testCommand(t, "init")
	setOutputFormat(t, cmd, OutputJSON)

	var buf bytes.Buffer
	require.NoError(t, runInit(context.Background(), cmd, &buf, false))

	path := filepath.Join(dir, ".pipeline", "config.yaml")
	assert.Contains(t, buf.String(), `"config": `)
	assert.Contains(t, buf.String(), path)
}
