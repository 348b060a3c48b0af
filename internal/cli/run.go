package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wwiii/pipeline/internal/clock"
	"github.com/wwiii/pipeline/internal/config"
	"github.com/wwiii/pipeline/internal/constants"
	"github.com/wwiii/pipeline/internal/container"
	"github.com/wwiii/pipeline/internal/errors"
	"github.com/wwiii/pipeline/internal/flock"
	"github.com/wwiii/pipeline/internal/gate"
	"github.com/wwiii/pipeline/internal/signal"
	"github.com/wwiii/pipeline/internal/tui"
)

// Constructors for a run's external seams: the subprocess runner, the tool
// detector, and the healthcheck's sleeper and prober. Package variables so
// command tests can substitute mocks without a daemon or PATH tools.
//
//nolint:gochecknoglobals // overridable seams for command tests
var (
	newCommandRunner = func() gate.CommandRunner { return &gate.DefaultCommandRunner{} }
	newToolDetector  = func() config.ToolDetector { return config.NewToolDetector() }
	newSettleSleeper = func() clock.Sleeper { return clock.RealClock{} }
	newHealthProber  = func(timeout time.Duration) container.Prober { return container.NewHTTPProber(timeout) }
)

// runEnv bundles everything a pipeline command needs after setup: resolved
// config, workspace, output sink, and the shared container engine.
type runEnv struct {
	cfg     *config.Config
	workDir string
	out     tui.Output
	format  string
	logger  zerolog.Logger
	runner  gate.CommandRunner
	engine  *container.Engine
}

// setupRun performs the work common to every pipeline command: config
// loading, workspace resolution, and tool precondition checks. Commands that
// mutate the workspace additionally take the run lock via acquireRunLock.
func setupRun(ctx context.Context, cmd *cobra.Command, w io.Writer, requiredTools []string) (*runEnv, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	logger := GetLogger()
	format := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, format)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		out.Error(err)
		return nil, err
	}

	workDir := cfg.Workspace.Root
	if !filepath.IsAbs(workDir) {
		workDir = filepath.Join(cwd, workDir)
	}
	if info, statErr := os.Stat(workDir); statErr != nil || !info.IsDir() {
		err = errors.Wrapf(errors.ErrWorkspaceNotFound, "%s", workDir)
		out.Error(err)
		return nil, err
	}

	if err = checkRequiredTools(ctx, out, requiredTools); err != nil {
		return nil, err
	}

	runner := newCommandRunner()
	return &runEnv{
		cfg:     cfg,
		workDir: workDir,
		out:     out,
		format:  format,
		logger:  logger,
		runner:  runner,
		engine:  container.NewEngine(runner, cfg.Container.Engine),
	}, nil
}

// checkRequiredTools verifies the command's required external tools are
// installed before any gate runs.
func checkRequiredTools(ctx context.Context, out tui.Output, names []string) error {
	if len(names) == 0 {
		return nil
	}

	detector := newToolDetector()
	result, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("tool detection failed: %w", err)
	}

	missing := result.Missing(names...)
	if len(missing) == 0 {
		return nil
	}

	for _, tool := range missing {
		out.Warning(fmt.Sprintf("%s is %s: %s", tool.Name, tool.Status, tool.InstallHint))
	}
	missingNames := make([]string, 0, len(missing))
	for _, tool := range missing {
		missingNames = append(missingNames, tool.Name)
	}
	err = errors.Wrapf(errors.ErrMissingRequiredTools, "%s", strings.Join(missingNames, ", "))
	out.Error(err)
	return err
}

// acquireRunLock takes the exclusive per-workspace run lock so two pipeline
// runs cannot race over the same tree. The caller must Release the returned
// lock.
func acquireRunLock(env *runEnv) (*flock.Lock, error) {
	lock, err := flock.Acquire(config.RunLockPath(env.workDir))
	if err != nil {
		err = errors.Wrapf(errors.ErrWorkspaceLocked, "%v", err)
		env.out.Error(err)
		env.out.Info(errors.Actionable(err))
		return nil, err
	}
	return lock, nil
}

// executePipeline runs a constructed pipeline under signal handling and
// renders the report. It returns ErrPipelineFailed (via Pipeline.Run) when
// any gate failed.
func executePipeline(ctx context.Context, env *runEnv, p *gate.Pipeline, live io.Writer, w io.Writer) error {
	lock, err := acquireRunLock(env)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	handler := signal.NewHandler(env.logger.WithContext(ctx))
	defer handler.Stop()
	runCtx := handler.Context()

	// Interrupts must not leak the healthcheck container.
	handler.RegisterCleanup(func() {
		env.engine.CleanupActive(context.WithoutCancel(runCtx))
	})

	rc := gate.NewRunContext(env.workDir, env.runner, env.cfg.Workspace.CommandTimeout)
	rc.LiveOutput = live

	report, runErr := p.Run(runCtx, rc)
	if renderErr := renderReport(env, report, w); renderErr != nil {
		return renderErr
	}

	if runErr != nil {
		env.out.Error(fmt.Errorf("%s", errors.UserMessage(runErr)))
		if action := errors.Actionable(runErr); action != "" {
			env.out.Info(action)
		}
	}
	return runErr
}

// renderReport writes the pipeline report in the selected output format.
func renderReport(env *runEnv, report *gate.Report, w io.Writer) error {
	if env.format == OutputJSON {
		return env.out.JSON(report)
	}

	table := tui.NewReportTable(report)
	return table.Render(w)
}

// commandGates builds the shared front of both pipelines: the static-check
// gates in their canonical order.
func commandGates(cfg *config.Config) []gate.Gate {
	return []gate.Gate{
		gate.Command(constants.GateLint, cfg.Gates.Lint),
		gate.Command(constants.GateFormatCheck, cfg.Gates.FormatCheck),
		gate.Command(constants.GateTypeCheck, cfg.Gates.TypeCheck),
	}
}

// imageRef returns the image reference built and health-checked by the
// container gates.
func imageRef(cfg *config.Config) string {
	return cfg.Container.Image + ":" + constants.DefaultImageTag
}
