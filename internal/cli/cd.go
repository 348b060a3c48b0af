// Package cli provides the command-line interface for the pipeline runner.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wwiii/pipeline/internal/constants"
	"github.com/wwiii/pipeline/internal/container"
)

// AddCDCommand adds the cd command to the root command.
func AddCDCommand(root *cobra.Command) {
	root.AddCommand(newCDCmd())
}

func newCDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cd [version]",
		Short: "Tag the built image and push it to the configured registry",
		Long: `Tag the most recently built image with the given version (default
"latest") and push it to the registry configured via registry.endpoint or
PIPELINE_REGISTRY_ENDPOINT. Without a registry endpoint the push is skipped
with a warning.

Deployment itself is out of scope; cd prepares the artifact and stops.

Examples:
  pipeline cd 1.4.2
  pipeline cd
  PIPELINE_REGISTRY_ENDPOINT=registry.example.com:5000 pipeline cd 1.4.2`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCD(cmd.Context(), cmd, args, os.Stdout)
		},
	}
}

func runCD(ctx context.Context, cmd *cobra.Command, args []string, w io.Writer) error {
	env, err := setupRun(ctx, cmd, w, []string{constants.ToolDocker})
	if err != nil {
		return err
	}

	version := constants.DefaultImageTag
	if len(args) > 0 {
		version = args[0]
	}

	ctx = env.logger.WithContext(ctx)
	result, err := container.Release(ctx, container.ReleaseOptions{
		Engine:    env.engine,
		Image:     env.cfg.Container.Image,
		SourceTag: constants.DefaultImageTag,
		Version:   version,
		Registry:  env.cfg.Registry.Endpoint,
	})
	if err != nil {
		env.out.Error(err)
		return err
	}

	if env.format == OutputJSON {
		return env.out.JSON(result)
	}

	env.out.Success(fmt.Sprintf("tagged %s", result.TaggedRef))
	if result.Pushed {
		env.out.Success(fmt.Sprintf("pushed %s", result.PushedRef))
	} else {
		env.out.Warning("no registry endpoint configured, push skipped")
	}
	env.out.Warning("deployment is not automated; deploy " + result.TaggedRef + " with your platform tooling")

	return nil
}
