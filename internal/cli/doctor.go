// Package cli provides the command-line interface for the pipeline runner.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wwiii/pipeline/internal/errors"
	"github.com/wwiii/pipeline/internal/tui"
)

// AddDoctorCommand adds the doctor command to the root command.
func AddDoctorCommand(root *cobra.Command) {
	root.AddCommand(newDoctorCmd())
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required external tools are installed",
		Long: `Detect the external tools the pipeline depends on (uv, docker, git),
report their versions, and list install hints for anything missing or
outdated.

Exits non-zero when a required tool is missing.

Examples:
  pipeline doctor
  pipeline doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.Context(), cmd, os.Stdout)
		},
	}
}

func runDoctor(ctx context.Context, cmd *cobra.Command, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()
	format := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, format)

	detector := newToolDetector()
	result, err := detector.Detect(ctx)
	if err != nil {
		out.Error(err)
		return err
	}

	logger.Debug().Int("tools", len(result.Tools)).Msg("tool detection complete")

	if format == OutputJSON {
		if err = out.JSON(result); err != nil {
			return err
		}
	} else {
		if err = tui.NewToolTable(result).Render(w); err != nil {
			return err
		}
	}

	if result.HasMissingRequired {
		missing := result.MissingRequiredTools()
		err = errors.Wrapf(errors.ErrMissingRequiredTools, "%d tool(s)", len(missing))
		out.Error(err)
		return err
	}

	out.Success("all required tools installed")
	return nil
}
