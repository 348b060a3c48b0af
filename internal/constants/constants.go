// Package constants provides centralized constant values used throughout the
// pipeline CLI. This package is the single source of truth for all shared
// constants and MUST NOT import any other internal packages.
package constants

import "time"

// Directory and file names used for pipeline configuration and state.
const (
	// PipelineHome is the hidden directory name where the pipeline stores
	// user-wide configuration. This directory is created in the user's home
	// directory.
	PipelineHome = ".pipeline"

	// ConfigFileName is the name of the YAML configuration file, both for
	// the global config (~/.pipeline/config.yaml) and the project config
	// (.pipeline/config.yaml).
	ConfigFileName = "config.yaml"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// LogFileName is the name of the rotating log file.
	LogFileName = "pipeline.log"

	// RunLockFileName is the name of the lock file that serializes pipeline
	// runs against a single workspace.
	RunLockFileName = "run.lock"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated log files.
	LogCompress = true
)

// Gate names, in their canonical pipeline order. Order is significant:
// lint and format-check precede type-check and tests because later gates
// assume the earlier ones have not mutated the tree.
const (
	// GateLint runs the code linter.
	GateLint = "lint"

	// GateFormatCheck verifies formatting without rewriting files.
	GateFormatCheck = "format-check"

	// GateTypeCheck runs the static type checker.
	GateTypeCheck = "type-check"

	// GateTest runs the test suite without coverage collection.
	GateTest = "test"

	// GateTestCoverage runs the test suite with coverage collection.
	GateTestCoverage = "test-coverage"

	// GateCoverageThreshold checks the parsed coverage percentage against
	// the configured minimum.
	GateCoverageThreshold = "coverage-threshold"

	// GateImageBuild builds the container image.
	GateImageBuild = "image-build"

	// GateImageHealthcheck boots a test container from the built image and
	// probes its liveness endpoint.
	GateImageHealthcheck = "image-healthcheck"
)

// Default gate commands. These wrap the project's external quality tools
// and can be overridden per-project in .pipeline/config.yaml.
const (
	// DefaultLintCommand is the default lint invocation.
	DefaultLintCommand = "uv run ruff check ."

	// DefaultFormatCheckCommand verifies formatting without mutating files.
	DefaultFormatCheckCommand = "uv run ruff format --check ."

	// DefaultTypeCheckCommand is the default static type check invocation.
	DefaultTypeCheckCommand = "uv run mypy app"

	// DefaultTestCommand runs the test suite without coverage.
	DefaultTestCommand = "uv run pytest"

	// DefaultTestCoverageCommand runs the test suite with a terminal
	// coverage report, whose TOTAL line feeds the coverage-threshold gate.
	DefaultTestCoverageCommand = "uv run pytest --cov=app --cov-report=term"
)

// Coverage threshold defaults.
const (
	// DefaultCoverageThreshold is the minimum acceptable coverage
	// percentage below which the coverage-threshold gate fails.
	DefaultCoverageThreshold = 85.0
)

// Container defaults.
const (
	// DefaultContainerEngine is the container engine binary.
	DefaultContainerEngine = "docker"

	// DefaultImageName is the image name used for builds and tags.
	DefaultImageName = "app"

	// DefaultImageTag is the tag applied when none is given.
	DefaultImageTag = "latest"

	// DefaultHealthURL is the liveness endpoint probed after the test
	// container starts.
	DefaultHealthURL = "http://localhost:8000/health"

	// DefaultHostPort is the host port mapping for the test container.
	DefaultHostPort = 8000

	// DefaultContainerPort is the port the application listens on inside
	// the container.
	DefaultContainerPort = 8000
)

// Timeout and interval configuration.
const (
	// DefaultCommandTimeout is the maximum duration for a single gate's
	// external tool invocation.
	DefaultCommandTimeout = 5 * time.Minute

	// DefaultSettleInterval is how long the runner waits after starting the
	// test container before probing its liveness endpoint.
	DefaultSettleInterval = 5 * time.Second

	// DefaultProbeTimeout is the HTTP client timeout for the single
	// liveness probe.
	DefaultProbeTimeout = 10 * time.Second
)

// Environment variable names consumed directly (outside viper's PIPELINE_
// prefix handling) for compatibility with the original CI scripts.
const (
	// EnvRegistry is the registry endpoint variable controlling whether the
	// push step runs or is skipped.
	EnvRegistry = "PIPELINE_REGISTRY_ENDPOINT"
)
