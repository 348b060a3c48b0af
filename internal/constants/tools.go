// Package constants provides centralized constant values used throughout the
// pipeline CLI. This file contains tool-related constants for the tool
// detection system.
package constants

import "time"

// Tool detection timeout configuration.
const (
	// ToolDetectionTimeout is the maximum duration for detecting all tools.
	// Detection runs in parallel but must complete within this timeout.
	ToolDetectionTimeout = 2 * time.Second
)

// Tool names used by the tool detection system.
const (
	// ToolUV is the uv Python package manager, which fronts every quality
	// tool invocation (ruff, mypy, pytest).
	ToolUV = "uv"

	// ToolDocker is the container engine CLI.
	ToolDocker = "docker"

	// ToolGit is the Git version control system.
	ToolGit = "git"
)

// Minimum version requirements for required tools.
const (
	// MinVersionUV is the minimum required uv version.
	MinVersionUV = "0.5.0"

	// MinVersionDocker is the minimum required container engine version.
	MinVersionDocker = "24.0.0"
)

// Tool version command arguments.
const (
	// VersionFlag is the flag passed to tools to report their version.
	VersionFlag = "--version"
)
