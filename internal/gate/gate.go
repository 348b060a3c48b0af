// Package gate provides quality-gate execution for the pipeline runner.
//
// A gate is one named, ordered quality or build check wrapping an external
// tool. Gates run strictly sequentially; order is fixed and significant
// because earlier gates (lint, format-check) guarantee invariants that later
// gates (type-check, test) rely on.
package gate

import (
	"context"
	"io"
	"time"

	"github.com/wwiii/pipeline/internal/clock"
)

// Outcome is the result category of a single gate run.
type Outcome int

const (
	// OutcomePassed indicates the gate's check succeeded.
	OutcomePassed Outcome = iota

	// OutcomeFailed indicates the wrapped tool exited non-zero or a parsed
	// value failed its threshold check.
	OutcomeFailed

	// OutcomeSkipped indicates the runner chose not to execute the gate
	// (e.g. a registry push with no endpoint configured). Skipped gates do
	// not fail a pipeline.
	OutcomeSkipped
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}

// Result captures the outcome of a single gate.
type Result struct {
	Gate        string    `json:"gate"`
	Outcome     Outcome   `json:"outcome"`
	Reason      string    `json:"reason,omitempty"`
	Warning     string    `json:"warning,omitempty"`
	ExitCode    int       `json:"exit_code"`
	Stdout      string    `json:"stdout,omitempty"`
	Stderr      string    `json:"stderr,omitempty"`
	DurationMs  int64     `json:"duration_ms"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Gate is one named check in a pipeline. RunFunc produces a Result and must
// not panic; all failures are expressed via the Result's Outcome and Reason.
type Gate struct {
	// Name is the stable gate identifier (e.g. "lint", "coverage-threshold").
	Name string

	// Run executes the gate's check.
	Run RunFunc
}

// RunFunc executes a gate check within a run context.
type RunFunc func(ctx context.Context, rc *RunContext) Result

// RunContext carries per-run state shared by the gates of one pipeline run.
// It replaces the implicit current-directory and environment reliance of
// shell pipelines with explicit configuration.
type RunContext struct {
	// WorkDir is the workspace root every gate command runs in.
	WorkDir string

	// Runner executes external commands. Injectable for testing.
	Runner CommandRunner

	// Timeout bounds each gate's external tool invocation.
	Timeout time.Duration

	// LiveOutput, when non-nil, receives gate subprocess output as it is
	// produced (CI mode). When nil, subprocess output is captured but
	// suppressed (quality-gates mode).
	LiveOutput io.Writer

	// Outputs collects the combined captured output of each completed
	// command gate, keyed by gate name. Analysis gates (coverage-threshold)
	// read a prior gate's output from here.
	Outputs map[string]string

	// Clock supplies time operations. Defaults to the real clock.
	Clock clock.Clock
}

// NewRunContext creates a run context with defaults applied.
func NewRunContext(workDir string, runner CommandRunner, timeout time.Duration) *RunContext {
	return &RunContext{
		WorkDir: workDir,
		Runner:  runner,
		Timeout: timeout,
		Outputs: make(map[string]string),
		Clock:   clock.RealClock{},
	}
}

// now returns the current time from the context's clock, falling back to the
// real clock when unset.
func (rc *RunContext) now() time.Time {
	if rc.Clock != nil {
		return rc.Clock.Now()
	}
	return clock.RealClock{}.Now()
}
