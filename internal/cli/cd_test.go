package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCD_DefaultVersionWithoutRegistrySkipsPush(t *testing.T) {
	setupWorkspace(t)

	runner := newRecordingRunner()
	overrideSeams(t, runner, installedTools(), nil)

	var buf bytes.Buffer
	err := runCD(context.Background(), testCommand(t, "cd"), nil, &buf)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "tagged app:latest")
	assert.Contains(t, out, "no registry endpoint configured, push skipped")
	assert.Contains(t, out, "deployment is not automated")

	// Only the local tag happened; nothing was pushed.
	assert.Equal(t, []string{"docker tag app:latest app:latest"}, runner.Calls())
}

func TestRunCD_VersionAndRegistryPushes(t *testing.T) {
	setupWorkspace(t)
	t.Setenv("PIPELINE_REGISTRY_ENDPOINT", "registry.example.com:5000")

	runner := newRecordingRunner()
	overrideSeams(t, runner, installedTools(), nil)

	var buf bytes.Buffer
	err := runCD(context.Background(), testCommand(t, "cd"), []string{"1.4.2"}, &buf)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "tagged app:1.4.2")
	assert.Contains(t, out, "pushed registry.example.com:5000/app:1.4.2")

	assert.Equal(t, []string{
		"docker tag app:latest app:1.4.2",
		"docker tag app:1.4.2 registry.example.com:5000/app:1.4.2",
		"docker push registry.example.com:5000/app:1.4.2",
	}, runner.Calls())
}

func TestRunCD_JSONOutput(t *testing.T) {
	setupWorkspace(t)

	runner := newRecordingRunner()
	overrideSeams(t, runner, installedTools(), nil)

	cmd := testCommand(t, "cd")
	setOutputFormat(t, cmd, OutputJSON)

	var buf bytes.Buffer
	err := runCD(context.Background(), cmd, []string{"2.0.0"}, &buf)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `"tagged_ref": "app:2.0.0"`)
	assert.Contains(t, out, `"pushed": false`)
}
