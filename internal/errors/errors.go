// Package errors provides centralized error handling for the pipeline CLI.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrPipelineFailed indicates that one or more gates in a pipeline run
	// did not pass.
	ErrPipelineFailed = errors.New("pipeline failed")

	// ErrMissingRequiredTools indicates that required external tools are not
	// installed. This is a fatal precondition failure, raised before any
	// gate runs.
	ErrMissingRequiredTools = errors.New("required tools are missing")

	// ErrCommandTimeout indicates that an external tool exceeded its
	// configured execution timeout.
	ErrCommandTimeout = errors.New("command timed out")

	// ErrWorkspaceNotFound indicates the configured workspace directory does
	// not exist.
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrWorkspaceLocked indicates another pipeline run holds the workspace
	// run lock.
	ErrWorkspaceLocked = errors.New("workspace is locked by another run")

	// ErrContainerRuntime indicates that a container engine operation
	// (build, run, stop, remove, tag, push) failed.
	ErrContainerRuntime = errors.New("container runtime operation failed")

	// ErrHealthcheckFailed indicates the liveness probe against the test
	// container did not succeed.
	ErrHealthcheckFailed = errors.New("container healthcheck failed")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidCoverage indicates an invalid coverage configuration value.
	ErrConfigInvalidCoverage = errors.New("invalid coverage configuration")

	// ErrConfigInvalidContainer indicates an invalid container configuration value.
	ErrConfigInvalidContainer = errors.New("invalid container configuration")

	// ErrConfigInvalidWorkspace indicates an invalid workspace configuration value.
	ErrConfigInvalidWorkspace = errors.New("invalid workspace configuration")

	// ErrConfigExists indicates an attempt to write a config file that
	// already exists without forcing an overwrite.
	ErrConfigExists = errors.New("config file already exists")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
