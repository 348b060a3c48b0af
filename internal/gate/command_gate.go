package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Command creates a gate that runs one external tool invocation in the
// workspace root and derives its outcome from the process exit code.
//
// The gate's captured output (stdout followed by stderr) is stored in the
// run context's Outputs map so that analysis gates can inspect it.
func Command(name, command string) Gate {
	return Gate{
		Name: name,
		Run: func(ctx context.Context, rc *RunContext) Result {
			return runCommandGate(ctx, rc, name, command)
		},
	}
}

// ReasonTimeout is the Result.Reason set when a gate command exceeded the
// configured command timeout. Pipeline.Run maps it to ErrCommandTimeout.
const ReasonTimeout = "command timed out"

// runCommandGate executes a single gate command with timeout handling.
func runCommandGate(ctx context.Context, rc *RunContext, name, command string) Result {
	log := zerolog.Ctx(ctx)

	startedAt := rc.now()
	log.Info().
		Str("gate", name).
		Str("command", command).
		Str("work_dir", rc.WorkDir).
		Msg("executing gate command")

	cmdCtx, cancel := context.WithTimeout(ctx, rc.Timeout)
	defer cancel()

	stdout, stderr, exitCode, runErr := executeCommand(cmdCtx, rc, command)

	completedAt := rc.now()
	duration := completedAt.Sub(startedAt)

	result := Result{
		Gate:        name,
		ExitCode:    exitCode,
		Stdout:      stdout,
		Stderr:      stderr,
		DurationMs:  duration.Milliseconds(),
		StartedAt:   startedAt,
		CompletedAt: completedAt,
	}

	rc.Outputs[name] = stdout + stderr

	return finishCommandGate(ctx, cmdCtx, result, command, duration, runErr, log)
}

// executeCommand runs the command, streaming output when the run context has
// a live output writer and the runner supports it.
func executeCommand(ctx context.Context, rc *RunContext, command string) (stdout, stderr string, exitCode int, runErr error) {
	if rc.LiveOutput != nil {
		if liveRunner, ok := rc.Runner.(LiveOutputRunner); ok {
			return liveRunner.RunWithLiveOutput(ctx, rc.WorkDir, command, rc.LiveOutput)
		}
	}
	return rc.Runner.Run(ctx, rc.WorkDir, command)
}

// finishCommandGate classifies the command outcome into a gate Result.
func finishCommandGate(ctx, cmdCtx context.Context, result Result, command string, duration time.Duration, runErr error, log *zerolog.Logger) Result {
	// Check for timeout
	if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
		result.Outcome = OutcomeFailed
		result.Reason = ReasonTimeout

		log.Error().
			Str("gate", result.Gate).
			Str("command", command).
			Dur("duration_ms", duration).
			Str("stderr", result.Stderr).
			Msg("gate command timed out")

		return result
	}

	// Check for cancellation from the parent context (operator interrupt)
	if ctx.Err() != nil {
		result.Outcome = OutcomeFailed
		result.Reason = "interrupted"
		return result
	}

	if runErr != nil || result.ExitCode != 0 {
		result.Outcome = OutcomeFailed
		if runErr != nil && result.ExitCode == 0 {
			result.Reason = runErr.Error()
		} else {
			result.Reason = fmt.Sprintf("exit code %d", result.ExitCode)
		}

		log.Error().
			Str("gate", result.Gate).
			Str("command", command).
			Int("exit_code", result.ExitCode).
			Dur("duration_ms", duration).
			Str("stderr", result.Stderr).
			Msg("gate command failed")

		return result
	}

	result.Outcome = OutcomePassed

	log.Info().
		Str("gate", result.Gate).
		Str("command", command).
		Int("exit_code", result.ExitCode).
		Dur("duration_ms", duration).
		Msg("gate command completed")

	return result
}
