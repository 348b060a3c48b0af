// Package cli provides the command-line interface for the pipeline runner.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wwiii/pipeline/internal/config"
	"github.com/wwiii/pipeline/internal/tui"
)

// AddInitCommand adds the init command to the root command.
func AddInitCommand(root *cobra.Command) {
	cmd := newInitCmd()
	root.AddCommand(cmd)
}

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .pipeline/config.yaml",
		Long: `Write an annotated default configuration file to .pipeline/config.yaml
in the current directory. Refuses to overwrite an existing file unless
--force is given.

Examples:
  pipeline init
  pipeline init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd, os.Stdout, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	return cmd
}

func runInit(ctx context.Context, cmd *cobra.Command, w io.Writer, force bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	logger := GetLogger()
	format := cmd.Flag("output").Value.String()
	tui.CheckNoColor()
	out := tui.NewOutput(w, format)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	path := config.ProjectConfigPath(cwd)
	if force {
		if err = os.Remove(path); err != nil && !os.IsNotExist(err) {
			out.Error(err)
			return err
		}
	}

	if err = config.WriteDefault(path); err != nil {
		out.Error(err)
		return err
	}

	logger.Info().Str("path", path).Msg("wrote default config")

	if format == OutputJSON {
		return out.JSON(map[string]string{"config": path})
	}
	out.Success("wrote " + path)
	return nil
}
