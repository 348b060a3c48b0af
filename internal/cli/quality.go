// Package cli provides the command-line interface for the pipeline runner.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wwiii/pipeline/internal/constants"
	"github.com/wwiii/pipeline/internal/container"
	"github.com/wwiii/pipeline/internal/gate"
)

// AddQualityGatesCommand adds the quality-gates command to the root command.
func AddQualityGatesCommand(root *cobra.Command) {
	root.AddCommand(newQualityGatesCmd())
}

func newQualityGatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quality-gates",
		Short: "Run every quality gate and aggregate failures",
		Long: `Run every quality gate regardless of earlier failures: lint,
format-check, type-check, tests, coverage threshold, and image build.

Unlike ci, tool output is suppressed; each gate reports a single pass/fail
line followed by a summary table. Use this before pushing to see every
problem at once.

Examples:
  pipeline quality-gates
  pipeline quality-gates --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQualityGates(cmd.Context(), cmd, os.Stdout)
		},
	}
}

func runQualityGates(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	env, err := setupRun(ctx, cmd, w, []string{constants.ToolUV, constants.ToolDocker})
	if err != nil {
		return err
	}

	p := &gate.Pipeline{
		Name:  "quality-gates",
		Mode:  gate.CollectAll,
		Gates: qualityGates(env),
	}

	// Tool output stays captured, never streamed.
	return executePipeline(ctx, env, p, nil, w)
}

// qualityGates builds the collect-all gate sequence. It runs the plain test
// command and stops short of the healthcheck, which only the ci pipeline
// exercises.
func qualityGates(env *runEnv) []gate.Gate {
	cfg := env.cfg
	gates := commandGates(cfg)
	return append(gates,
		gate.Command(constants.GateTest, cfg.Gates.Test),
		gate.CoverageThreshold(constants.GateCoverageThreshold, constants.GateTest, cfg.Coverage.Threshold),
		container.BuildGate(constants.GateImageBuild, env.engine, imageRef(cfg)),
	)
}
