package container

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/wwiii/pipeline/internal/clock"
	"github.com/wwiii/pipeline/internal/gate"
)

// BuildGate creates a gate that builds the container image from the
// workspace's Dockerfile.
func BuildGate(name string, engine *Engine, ref string) gate.Gate {
	return gate.Gate{
		Name: name,
		Run: func(ctx context.Context, rc *gate.RunContext) gate.Result {
			startedAt := rc.Clock.Now()
			result := gate.Result{Gate: name, StartedAt: startedAt}

			buildCtx, cancel := context.WithTimeout(ctx, rc.Timeout)
			defer cancel()

			if _, err := engine.Build(buildCtx, rc.WorkDir, ref); err != nil {
				result.Outcome = gate.OutcomeFailed
				result.Reason = err.Error()
				result.ExitCode = 1
			} else {
				result.Outcome = gate.OutcomePassed
			}

			result.CompletedAt = rc.Clock.Now()
			result.DurationMs = result.CompletedAt.Sub(startedAt).Milliseconds()
			return result
		},
	}
}

// HealthcheckOptions configures the image-healthcheck gate.
type HealthcheckOptions struct {
	// Engine drives the container CLI.
	Engine *Engine

	// Ref is the image reference to boot.
	Ref string

	// HealthURL is the liveness endpoint probed once after the settle wait.
	HealthURL string

	// HostPort and ContainerPort form the test container's port mapping.
	HostPort      int
	ContainerPort int

	// Settle is the fixed interval waited between container start and the
	// single liveness probe.
	Settle time.Duration

	// Sleeper performs the settle wait. Injectable so tests don't block.
	Sleeper clock.Sleeper

	// Prober issues the liveness probe.
	Prober Prober
}

// HealthcheckGate creates a gate that starts a container from the built
// image, waits a fixed settle interval, polls the liveness endpoint exactly
// once, and fails unless the poll succeeds. The test container is stopped
// and removed on every path out of the gate.
func HealthcheckGate(name string, opts HealthcheckOptions) gate.Gate {
	return gate.Gate{
		Name: name,
		Run: func(ctx context.Context, rc *gate.RunContext) gate.Result {
			return runHealthcheck(ctx, rc, name, opts)
		},
	}
}

func runHealthcheck(ctx context.Context, rc *gate.RunContext, name string, opts HealthcheckOptions) gate.Result {
	log := zerolog.Ctx(ctx)
	startedAt := rc.Clock.Now()
	result := gate.Result{Gate: name, StartedAt: startedAt}

	fail := func(reason string) gate.Result {
		result.Outcome = gate.OutcomeFailed
		result.Reason = reason
		result.ExitCode = 1
		result.CompletedAt = rc.Clock.Now()
		result.DurationMs = result.CompletedAt.Sub(startedAt).Milliseconds()
		return result
	}

	containerName, err := opts.Engine.StartDetached(ctx, opts.Ref, opts.HostPort, opts.ContainerPort)
	if err != nil {
		return fail(err.Error())
	}

	// Cleanup on all paths: success, probe failure, and interrupt.
	defer opts.Engine.Cleanup(ctx, containerName)

	log.Info().
		Str("gate", name).
		Str("container", containerName).
		Dur("settle", opts.Settle).
		Msg("waiting for container to settle")

	if err := opts.Sleeper.Sleep(ctx, opts.Settle); err != nil {
		return fail("interrupted while waiting for container to settle")
	}

	if err := opts.Prober.Probe(ctx, opts.HealthURL); err != nil {
		return fail(err.Error())
	}

	result.Outcome = gate.OutcomePassed
	result.CompletedAt = rc.Clock.Now()
	result.DurationMs = result.CompletedAt.Sub(startedAt).Milliseconds()
	return result
}
