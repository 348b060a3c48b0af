// Package config provides configuration management for the pipeline CLI with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (PIPELINE_* prefix)
//  2. Project config (.pipeline/config.yaml)
//  3. Global config (~/.pipeline/config.yaml)
//  4. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
// This replaces the implicit current-directory and exported-environment
// reliance of shell pipelines with one explicit structure handed to the
// pipeline runner.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/gate or other internal packages.
package config

import "time"

// Config is the root configuration structure for the pipeline runner.
type Config struct {
	// Workspace contains settings for the code workspace gates run against.
	Workspace WorkspaceConfig `yaml:"workspace" mapstructure:"workspace"`

	// Coverage contains settings for the coverage-threshold gate.
	Coverage CoverageConfig `yaml:"coverage" mapstructure:"coverage"`

	// Gates contains command overrides for the quality gates.
	Gates GatesConfig `yaml:"gates" mapstructure:"gates"`

	// Container contains settings for the image-build and image-healthcheck
	// gates.
	Container ContainerConfig `yaml:"container" mapstructure:"container"`

	// Registry contains settings for the cd push step.
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
}

// WorkspaceConfig contains settings for the workspace gates run against.
type WorkspaceConfig struct {
	// Root is the workspace directory every gate command runs in.
	// Default: "." (the invocation directory)
	Root string `yaml:"root" mapstructure:"root"`

	// CommandTimeout is the maximum duration for a single gate's external
	// tool invocation.
	// Default: 5 minutes
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`
}

// CoverageConfig contains settings for the coverage-threshold gate.
type CoverageConfig struct {
	// Threshold is the minimum acceptable coverage percentage.
	// Default: 85, valid range: 0-100
	Threshold float64 `yaml:"threshold" mapstructure:"threshold"`
}

// GatesConfig holds the external commands the quality gates wrap.
// Empty values fall back to the built-in defaults.
type GatesConfig struct {
	// Lint is the lint gate command.
	Lint string `yaml:"lint" mapstructure:"lint"`

	// FormatCheck is the format-check gate command. It must verify, never
	// rewrite: later gates assume the tree has not been mutated.
	FormatCheck string `yaml:"format_check" mapstructure:"format_check"`

	// TypeCheck is the type-check gate command.
	TypeCheck string `yaml:"type_check" mapstructure:"type_check"`

	// Test is the plain test gate command (quality-gates mode).
	Test string `yaml:"test" mapstructure:"test"`

	// TestCoverage is the test gate command with coverage collection
	// (ci mode); its TOTAL line feeds the coverage-threshold gate.
	TestCoverage string `yaml:"test_coverage" mapstructure:"test_coverage"`
}

// ContainerConfig contains settings for the container gates.
type ContainerConfig struct {
	// Engine is the container CLI binary.
	// Default: "docker"
	Engine string `yaml:"engine" mapstructure:"engine"`

	// Image is the bare image name used for builds and tags.
	// Default: "app"
	Image string `yaml:"image" mapstructure:"image"`

	// HealthURL is the liveness endpoint probed after the test container
	// starts.
	// Default: "http://localhost:8000/health"
	HealthURL string `yaml:"health_url" mapstructure:"health_url"`

	// HostPort is the host side of the test container's port mapping.
	// Default: 8000
	HostPort int `yaml:"host_port" mapstructure:"host_port"`

	// Port is the port the application listens on inside the container.
	// Default: 8000
	Port int `yaml:"port" mapstructure:"port"`

	// SettleInterval is the fixed wait between container start and the
	// single liveness probe.
	// Default: 5 seconds
	SettleInterval time.Duration `yaml:"settle_interval" mapstructure:"settle_interval"`

	// ProbeTimeout is the HTTP client timeout for the liveness probe.
	// Default: 10 seconds
	ProbeTimeout time.Duration `yaml:"probe_timeout" mapstructure:"probe_timeout"`
}

// RegistryConfig contains settings for the cd push step.
type RegistryConfig struct {
	// Endpoint is the registry host (e.g. "registry.example.com:5000").
	// Empty means the push step is skipped with a warning.
	// Also settable via PIPELINE_REGISTRY_ENDPOINT.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}
