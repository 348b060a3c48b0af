package gate_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wwiii/pipeline/internal/gate"
)

// errCommandNotConfigured is returned by the mock for commands without a
// canned response.
var errCommandNotConfigured = errors.New("command not configured")

// mockResponse is the canned result for one command.
type mockResponse struct {
	stdout   string
	stderr   string
	exitCode int
	err      error
	delay    time.Duration
}

// MockCommandRunner implements CommandRunner for testing. It records the
// order of commands run so tests can assert short-circuit and exactly-once
// behavior.
type MockCommandRunner struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
}

// NewMockCommandRunner creates a new mock command runner.
func NewMockCommandRunner() *MockCommandRunner {
	return &MockCommandRunner{
		responses: make(map[string]mockResponse),
	}
}

// SetResponse configures the response for a specific command.
func (m *MockCommandRunner) SetResponse(command, stdout, stderr string, exitCode int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[command] = mockResponse{stdout: stdout, stderr: stderr, exitCode: exitCode, err: err}
}

// SetResponseWithDelay configures a response with an artificial delay.
func (m *MockCommandRunner) SetResponseWithDelay(command, stdout, stderr string, exitCode int, err error, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[command] = mockResponse{stdout: stdout, stderr: stderr, exitCode: exitCode, err: err, delay: delay}
}

// Calls returns the commands run, in order.
func (m *MockCommandRunner) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Run implements CommandRunner.Run.
func (m *MockCommandRunner) Run(ctx context.Context, _, command string) (stdout, stderr string, exitCode int, err error) {
	m.mu.Lock()
	m.calls = append(m.calls, command)
	resp, ok := m.responses[command]
	m.mu.Unlock()

	if !ok {
		return "", "command not configured", 1, errCommandNotConfigured
	}

	if resp.delay > 0 {
		select {
		case <-ctx.Done():
			return "", "context canceled", 1, ctx.Err()
		case <-time.After(resp.delay):
		}
	}

	return resp.stdout, resp.stderr, resp.exitCode, resp.err
}

// RunWithLiveOutput implements LiveOutputRunner, streaming the canned output.
func (m *MockCommandRunner) RunWithLiveOutput(ctx context.Context, workDir, command string, liveOut io.Writer) (stdout, stderr string, exitCode int, err error) {
	stdout, stderr, exitCode, err = m.Run(ctx, workDir, command)
	if liveOut != nil {
		_, _ = io.WriteString(liveOut, stdout)
		_, _ = io.WriteString(liveOut, stderr)
	}
	return stdout, stderr, exitCode, err
}

// Ensure MockCommandRunner implements both runner interfaces.
var (
	_ gate.CommandRunner    = (*MockCommandRunner)(nil)
	_ gate.LiveOutputRunner = (*MockCommandRunner)(nil)
)

// testContext returns a context carrying a no-op logger.
func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}
