// Package container wraps the container engine CLI (docker by default) for
// the image-build, image-healthcheck, and cd pipeline steps.
//
// All engine operations go through the same CommandRunner interface the
// quality gates use, so tests can run the full container flow against a
// mock without a daemon.
package container

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pipelineerrors "github.com/wwiii/pipeline/internal/errors"
	"github.com/wwiii/pipeline/internal/gate"
)

// Engine drives a container CLI (docker-compatible).
type Engine struct {
	runner gate.CommandRunner
	bin    string

	mu     sync.Mutex
	active []string // names of containers started and not yet cleaned up
}

// NewEngine creates an engine around the given binary ("docker" by default).
func NewEngine(runner gate.CommandRunner, bin string) *Engine {
	return &Engine{runner: runner, bin: bin}
}

// Build builds an image from the workspace's Dockerfile and tags it ref.
func (e *Engine) Build(ctx context.Context, workDir, ref string) (string, error) {
	return e.exec(ctx, workDir, fmt.Sprintf("%s build -t %s .", e.bin, ref))
}

// StartDetached starts a detached container from ref with a unique
// generated name and the given port mapping, and records it for cleanup.
// It returns the container name.
func (e *Engine) StartDetached(ctx context.Context, ref string, hostPort, containerPort int) (string, error) {
	name := fmt.Sprintf("pipeline-healthcheck-%s", uuid.NewString()[:8])

	cmd := fmt.Sprintf("%s run -d --name %s -p %d:%d %s", e.bin, name, hostPort, containerPort, ref)
	if _, err := e.exec(ctx, "", cmd); err != nil {
		return "", err
	}

	e.mu.Lock()
	e.active = append(e.active, name)
	e.mu.Unlock()

	return name, nil
}

// Cleanup stops and removes the named container. It runs on both the
// success and failure paths of the healthcheck gate and must work even when
// the run context was canceled, so it detaches from cancellation.
// Errors are logged, not returned: cleanup is best effort.
func (e *Engine) Cleanup(ctx context.Context, name string) {
	log := zerolog.Ctx(ctx)
	cleanupCtx := context.WithoutCancel(ctx)

	if _, err := e.exec(cleanupCtx, "", fmt.Sprintf("%s stop %s", e.bin, name)); err != nil {
		log.Warn().Err(err).Str("container", name).Msg("failed to stop test container")
	}
	if _, err := e.exec(cleanupCtx, "", fmt.Sprintf("%s rm -f %s", e.bin, name)); err != nil {
		log.Warn().Err(err).Str("container", name).Msg("failed to remove test container")
	}

	e.mu.Lock()
	for i, active := range e.active {
		if active == name {
			e.active = append(e.active[:i], e.active[i+1:]...)
			break
		}
	}
	e.mu.Unlock()
}

// CleanupActive stops and removes every container this engine started that
// has not been cleaned up yet. Used by the interrupt handler so an operator
// Ctrl+C never leaks a test container.
func (e *Engine) CleanupActive(ctx context.Context) {
	e.mu.Lock()
	names := make([]string, len(e.active))
	copy(names, e.active)
	e.mu.Unlock()

	for _, name := range names {
		e.Cleanup(ctx, name)
	}
}

// Tag applies a new tag to an existing image reference.
func (e *Engine) Tag(ctx context.Context, sourceRef, targetRef string) error {
	_, err := e.exec(ctx, "", fmt.Sprintf("%s tag %s %s", e.bin, sourceRef, targetRef))
	return err
}

// Push pushes an image reference to its registry.
func (e *Engine) Push(ctx context.Context, ref string) error {
	_, err := e.exec(ctx, "", fmt.Sprintf("%s push %s", e.bin, ref))
	return err
}

// exec runs one engine command, returning trimmed stdout.
func (e *Engine) exec(ctx context.Context, workDir, command string) (string, error) {
	log := zerolog.Ctx(ctx)
	log.Debug().Str("command", command).Msg("container engine command")

	stdout, stderr, exitCode, err := e.runner.Run(ctx, workDir, command)
	if err != nil || exitCode != 0 {
		detail := strings.TrimSpace(stderr)
		if detail == "" && err != nil {
			detail = err.Error()
		}
		return "", pipelineerrors.Wrapf(pipelineerrors.ErrContainerRuntime, "%s (exit code %d): %s", command, exitCode, detail)
	}
	return strings.TrimSpace(stdout), nil
}
