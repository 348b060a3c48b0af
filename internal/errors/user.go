package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrPipelineFailed,
		info: ErrorInfo{
			Message: "The pipeline did not pass. One or more gates failed.",
			Action:  "Review the per-gate results above, fix the failures, and rerun.",
		},
	},
	{
		err: ErrMissingRequiredTools,
		info: ErrorInfo{
			Message: "Required external tools are missing from PATH.",
			Action:  "Run 'pipeline doctor' to see which tools need to be installed.",
		},
	},
	{
		err: ErrCommandTimeout,
		info: ErrorInfo{
			Message: "An external tool exceeded its execution timeout.",
			Action:  "Increase workspace.command_timeout in .pipeline/config.yaml or investigate the hang.",
		},
	},
	{
		err: ErrWorkspaceNotFound,
		info: ErrorInfo{
			Message: "The configured workspace directory does not exist.",
			Action:  "Check workspace.root in your configuration or run from the project root.",
		},
	},
	{
		err: ErrWorkspaceLocked,
		info: ErrorInfo{
			Message: "Another pipeline run is already active in this workspace.",
			Action:  "Wait for the other run to finish, or remove a stale .pipeline/run.lock.",
		},
	},
	{
		err: ErrContainerRuntime,
		info: ErrorInfo{
			Message: "A container engine operation failed.",
			Action:  "Check that the container engine daemon is running and retry.",
		},
	},
	{
		err: ErrHealthcheckFailed,
		info: ErrorInfo{
			Message: "The built image started but did not answer its liveness probe.",
			Action:  "Inspect the container logs for startup errors before rebuilding.",
		},
	},
	{
		err: ErrConfigExists,
		info: ErrorInfo{
			Message: "A pipeline config file already exists.",
			Action:  "Use 'pipeline init --force' to overwrite it.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "The requested output format is not supported.",
			Action:  "Use --output text or --output json.",
		},
	},
}

// UserMessage returns a user-friendly message for the given error.
// If the error matches a known sentinel, its mapped message is returned;
// otherwise the error's own text is returned unchanged.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Message
		}
	}
	return err.Error()
}

// Actionable returns the suggested action for the given error, or empty
// string when no action is known.
func Actionable(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Action
		}
	}
	return ""
}
