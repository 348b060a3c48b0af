// Package config provides configuration management for the pipeline CLI.
// This file implements the tool detection system for checking external tool
// availability.
package config

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wwiii/pipeline/internal/constants"
)

// Pre-compiled regexes for version parsing (compiled once at package init).
//
//nolint:gochecknoglobals // Package-level compiled regexes are a Go best practice for performance
var (
	uvVersionRe     = regexp.MustCompile(`uv (\d+\.\d+(?:\.\d+)?)`)
	dockerVersionRe = regexp.MustCompile(`version (\d+\.\d+(?:\.\d+)?)`)
	gitVersionRe    = regexp.MustCompile(`git version (\d+\.\d+(?:\.\d+)?)`)
)

// ToolStatus represents the installation status of an external tool.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver per json.Unmarshaler interface
type ToolStatus int

const (
	// ToolStatusMissing indicates the tool is not installed.
	ToolStatusMissing ToolStatus = iota

	// ToolStatusInstalled indicates the tool is installed and meets version requirements.
	ToolStatusInstalled

	// ToolStatusOutdated indicates the tool is installed but below the minimum version.
	ToolStatusOutdated
)

// maxVersionSegments is the number of segments in a semantic version (major.minor.patch).
const maxVersionSegments = 3

// String returns a human-readable representation of the tool status.
func (s ToolStatus) String() string {
	switch s {
	case ToolStatusInstalled:
		return "installed"
	case ToolStatusMissing:
		return "missing"
	case ToolStatusOutdated:
		return "outdated"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for human-readable JSON output.
func (s ToolStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for parsing JSON status strings.
func (s *ToolStatus) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	switch str {
	case "installed":
		*s = ToolStatusInstalled
	case "missing":
		*s = ToolStatusMissing
	case "outdated":
		*s = ToolStatusOutdated
	default:
		*s = ToolStatusMissing
	}
	return nil
}

// Tool represents an external tool the pipeline depends on.
type Tool struct {
	// Name is the tool identifier (e.g., "uv", "docker").
	Name string `json:"name"`

	// Required indicates if the tool is mandatory for quality gates to run.
	Required bool `json:"required"`

	// MinVersion is the minimum required version (semver format).
	MinVersion string `json:"min_version"`

	// CurrentVersion is the detected installed version.
	CurrentVersion string `json:"current_version"`

	// Status is the current installation status.
	Status ToolStatus `json:"status"`

	// InstallHint provides installation instructions for missing tools.
	InstallHint string `json:"install_hint"`
}

// ToolDetectionResult holds the results of detecting all tools.
type ToolDetectionResult struct {
	// Tools contains the detection result for each tool.
	Tools []Tool `json:"tools"`

	// HasMissingRequired indicates if any required tools are missing or outdated.
	HasMissingRequired bool `json:"has_missing_required"`
}

// MissingRequiredTools returns a list of required tools that are missing or outdated.
func (r *ToolDetectionResult) MissingRequiredTools() []Tool {
	var missing []Tool
	for _, tool := range r.Tools {
		if tool.Required && (tool.Status == ToolStatusMissing || tool.Status == ToolStatusOutdated) {
			missing = append(missing, tool)
		}
	}
	return missing
}

// Missing returns the tools among names that are missing or outdated. It is
// used for per-command precondition checks where only a subset of tools is
// needed (e.g. cd needs only the container engine, not uv).
func (r *ToolDetectionResult) Missing(names ...string) []Tool {
	var missing []Tool
	for _, tool := range r.Tools {
		for _, name := range names {
			if tool.Name == name && (tool.Status == ToolStatusMissing || tool.Status == ToolStatusOutdated) {
				missing = append(missing, tool)
			}
		}
	}
	return missing
}

// CommandExecutor abstracts command execution for testability.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the PATH.
	LookPath(file string) (string, error)

	// Run executes a command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// DefaultCommandExecutor implements CommandExecutor using os/exec.
type DefaultCommandExecutor struct{}

// LookPath searches for an executable in the PATH.
func (e *DefaultCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes a command and returns its output.
func (e *DefaultCommandExecutor) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Version probes must never inherit the terminal
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// ToolDetector detects the installation status of external tools.
type ToolDetector interface {
	// Detect checks all configured tools and returns their status.
	Detect(ctx context.Context) (*ToolDetectionResult, error)
}

// DefaultToolDetector implements ToolDetector.
type DefaultToolDetector struct {
	executor CommandExecutor
}

// NewToolDetector creates a new DefaultToolDetector with the default executor.
func NewToolDetector() *DefaultToolDetector {
	return &DefaultToolDetector{
		executor: &DefaultCommandExecutor{},
	}
}

// NewToolDetectorWithExecutor creates a new DefaultToolDetector with a custom executor.
func NewToolDetectorWithExecutor(executor CommandExecutor) *DefaultToolDetector {
	return &DefaultToolDetector{
		executor: executor,
	}
}

// toolConfig holds the configuration for detecting a specific tool.
type toolConfig struct {
	name        string
	command     string
	versionFlag string
	minVersion  string
	required    bool
	installHint string
	parseFunc   func(output string) string
}

// getToolConfigs returns the configuration for all tools to detect.
func getToolConfigs() []toolConfig {
	return []toolConfig{
		{
			name:        constants.ToolUV,
			command:     constants.ToolUV,
			versionFlag: constants.VersionFlag,
			minVersion:  constants.MinVersionUV,
			required:    true,
			installHint: "Install uv: curl -LsSf https://astral.sh/uv/install.sh | sh",
			parseFunc:   parseUVVersion,
		},
		{
			name:        constants.ToolDocker,
			command:     constants.ToolDocker,
			versionFlag: constants.VersionFlag,
			minVersion:  constants.MinVersionDocker,
			required:    true,
			installHint: "Install Docker from https://docs.docker.com/get-docker/ (version 24.0+)",
			parseFunc:   parseDockerVersion,
		},
		{
			name:        constants.ToolGit,
			command:     constants.ToolGit,
			versionFlag: constants.VersionFlag,
			minVersion:  "",
			required:    false, // only the cd tag step needs git
			installHint: "Install Git from https://git-scm.com/downloads",
			parseFunc:   parseGitVersion,
		},
	}
}

// Detect checks all configured tools and returns their status.
func (d *DefaultToolDetector) Detect(ctx context.Context) (*ToolDetectionResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	detectCtx, cancel := context.WithTimeout(ctx, constants.ToolDetectionTimeout)
	defer cancel()

	configs := getToolConfigs()
	result := &ToolDetectionResult{
		Tools: make([]Tool, 0, len(configs)),
	}
	var resultMu sync.Mutex

	g, gCtx := errgroup.WithContext(detectCtx)

	for _, cfg := range configs {
		g.Go(func() error {
			tool := d.detectTool(gCtx, cfg)
			resultMu.Lock()
			result.Tools = append(result.Tools, tool)
			resultMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to detect tools: %w", err)
	}

	for _, tool := range result.Tools {
		if tool.Required && (tool.Status == ToolStatusMissing || tool.Status == ToolStatusOutdated) {
			result.HasMissingRequired = true
			break
		}
	}

	return result, nil
}

// detectTool detects a single tool's status.
func (d *DefaultToolDetector) detectTool(ctx context.Context, cfg toolConfig) Tool {
	tool := Tool{
		Name:        cfg.name,
		Required:    cfg.required,
		MinVersion:  cfg.minVersion,
		InstallHint: cfg.installHint,
		Status:      ToolStatusMissing,
	}

	_, err := d.executor.LookPath(cfg.command)
	if err != nil {
		return tool
	}

	output, err := d.executor.Run(ctx, cfg.command, cfg.versionFlag)
	if err != nil {
		// Tool exists but version command failed - treat as installed without version info
		tool.Status = ToolStatusInstalled
		tool.CurrentVersion = "unknown"
		return tool
	}

	tool.CurrentVersion = cfg.parseFunc(output)
	if tool.CurrentVersion == "" {
		tool.CurrentVersion = "unknown"
		tool.Status = ToolStatusInstalled
		return tool
	}

	if cfg.minVersion != "" {
		if CompareVersions(tool.CurrentVersion, cfg.minVersion) < 0 {
			tool.Status = ToolStatusOutdated
		} else {
			tool.Status = ToolStatusInstalled
		}
	} else {
		tool.Status = ToolStatusInstalled
	}

	return tool
}

// Version parsing functions for each tool.
// All functions use pre-compiled regexes defined at package level for performance.

// parseUVVersion parses "uv 0.5.14 (bb7af57b8 2025-01-03)" → "0.5.14"
func parseUVVersion(output string) string {
	if matches := uvVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parseDockerVersion parses "Docker version 27.3.1, build ce12230" → "27.3.1"
func parseDockerVersion(output string) string {
	if matches := dockerVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// parseGitVersion parses "git version 2.39.0" → "2.39.0"
func parseGitVersion(output string) string {
	if matches := gitVersionRe.FindStringSubmatch(output); len(matches) >= 2 {
		return matches[1]
	}
	return ""
}

// CompareVersions compares two semantic versions.
// Returns:
//
//	-1 if current < required
//	 0 if current == required
//	 1 if current > required
func CompareVersions(current, required string) int {
	current = strings.TrimPrefix(current, "v")
	required = strings.TrimPrefix(required, "v")

	currentParts := parseVersionParts(current)
	requiredParts := parseVersionParts(required)

	for i := 0; i < maxVersionSegments; i++ {
		if currentParts[i] < requiredParts[i] {
			return -1
		}
		if currentParts[i] > requiredParts[i] {
			return 1
		}
	}

	return 0
}

// parseVersionParts parses a version string into [major, minor, patch].
func parseVersionParts(version string) [maxVersionSegments]int {
	var parts [maxVersionSegments]int
	segments := strings.Split(version, ".")

	for i := 0; i < len(segments) && i < maxVersionSegments; i++ {
		numStr := segments[i]
		for j, r := range numStr {
			if r < '0' || r > '9' {
				numStr = numStr[:j]
				break
			}
		}
		if n, err := strconv.Atoi(numStr); err == nil {
			parts[i] = n
		}
	}

	return parts
}
