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

// AddCICommand adds the ci command to the root command.
func AddCICommand(root *cobra.Command) {
	root.AddCommand(newCICmd())
}

func newCICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ci",
		Short: "Run the fail-fast CI pipeline",
		Long: `Run the full CI pipeline: lint, format-check, type-check, tests with
coverage, coverage threshold, image build, and image healthcheck.

The pipeline stops at the first failing gate. Tool output streams to the
console as it is produced.

Examples:
  pipeline ci
  pipeline ci --output json
  pipeline ci --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCI(cmd.Context(), cmd, os.Stdout)
		},
	}
}

func runCI(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	env, err := setupRun(ctx, cmd, w, []string{constants.ToolUV, constants.ToolDocker})
	if err != nil {
		return err
	}

	p := &gate.Pipeline{
		Name:  "ci",
		Mode:  gate.FailFast,
		Gates: ciGates(env),
	}

	// Live streaming would interleave with and corrupt JSON output.
	var live io.Writer
	if env.format != OutputJSON {
		live = w
	}

	return executePipeline(ctx, env, p, live, w)
}

// ciGates builds the full fail-fast gate sequence.
func ciGates(env *runEnv) []gate.Gate {
	cfg := env.cfg
	ref := imageRef(cfg)

	gates := commandGates(cfg)
	gates = append(gates,
		gate.Command(constants.GateTestCoverage, cfg.Gates.TestCoverage),
		gate.CoverageThreshold(constants.GateCoverageThreshold, constants.GateTestCoverage, cfg.Coverage.Threshold),
		container.BuildGate(constants.GateImageBuild, env.engine, ref),
		container.HealthcheckGate(constants.GateImageHealthcheck, container.HealthcheckOptions{
			Engine:        env.engine,
			Ref:           ref,
			HealthURL:     cfg.Container.HealthURL,
			HostPort:      cfg.Container.HostPort,
			ContainerPort: cfg.Container.Port,
			Settle:        cfg.Container.SettleInterval,
			Sleeper:       newSettleSleeper(),
			Prober:        newHealthProber(cfg.Container.ProbeTimeout),
		}),
	)
	return gates
}
