// Package cli provides the command-line interface for the pipeline runner.
package cli

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes for the CLI. The runner deliberately exposes only two: CI
// systems branch on zero versus non-zero and nothing else.
const (
	// ExitSuccess indicates every gate passed.
	ExitSuccess = 0
	// ExitFailure indicates a failed gate, a failed precondition, or any
	// other error.
	ExitFailure = 1
)

// Output format constants.
const (
	// OutputText is the default human-readable output format.
	OutputText = "text"
	// OutputJSON is the machine-readable JSON output format.
	OutputJSON = "json"
)

// GlobalFlags holds flags available to all commands.
type GlobalFlags struct {
	// Output specifies the output format (text or json).
	Output string
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
}

// AddGlobalFlags adds global flags to a command.
// These flags are available to all subcommands via PersistentFlags.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.PersistentFlags().StringVarP(&flags.Output, "output", "o", OutputText, "output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds global flags to Viper for configuration file and
// environment variable support. The PIPELINE_ prefix is used for environment
// variables (e.g., PIPELINE_OUTPUT, PIPELINE_VERBOSE).
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	// Use Root().PersistentFlags() to find flags defined on the root command,
	// even when called from a subcommand's PersistentPreRunE.
	rootFlags := cmd.Root().PersistentFlags()

	if err := v.BindPFlag("output", rootFlags.Lookup("output")); err != nil {
		return err
	}
	if err := v.BindPFlag("verbose", rootFlags.Lookup("verbose")); err != nil {
		return err
	}
	if err := v.BindPFlag("quiet", rootFlags.Lookup("quiet")); err != nil {
		return err
	}

	v.SetEnvPrefix("PIPELINE")
	v.AutomaticEnv()

	return nil
}

// ResolveGlobalFlags reads the bound values back out of viper so that
// PIPELINE_OUTPUT, PIPELINE_VERBOSE, and PIPELINE_QUIET take effect when the
// corresponding flag was not given on the command line, and mirrors the
// resolved values onto the persistent flags so later flag lookups agree.
func ResolveGlobalFlags(v *viper.Viper, cmd *cobra.Command, flags *GlobalFlags) error {
	flags.Output = v.GetString("output")
	flags.Verbose = v.GetBool("verbose")
	flags.Quiet = v.GetBool("quiet")

	rootFlags := cmd.Root().PersistentFlags()
	if err := rootFlags.Set("output", flags.Output); err != nil {
		return err
	}
	if err := rootFlags.Set("verbose", strconv.FormatBool(flags.Verbose)); err != nil {
		return err
	}
	return rootFlags.Set("quiet", strconv.FormatBool(flags.Quiet))
}

// ValidOutputFormats returns the list of valid output format values.
func ValidOutputFormats() []string {
	return []string{OutputText, OutputJSON}
}

// IsValidOutputFormat checks if the given format is a valid output format.
func IsValidOutputFormat(format string) bool {
	for _, valid := range ValidOutputFormats() {
		if format == valid {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the exit code for the given error: ExitSuccess
// for nil and ExitFailure for everything else.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
