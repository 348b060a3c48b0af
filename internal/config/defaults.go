package config

import (
	"github.com/wwiii/pipeline/internal/constants"
)

// DefaultConfig returns a Config populated with the built-in defaults.
// It targets a uv-managed Python service published as a Docker image, which
// is the project shape the default gate commands assume.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{
			Root:           ".",
			CommandTimeout: constants.DefaultCommandTimeout,
		},
		Coverage: CoverageConfig{
			Threshold: constants.DefaultCoverageThreshold,
		},
		Gates: GatesConfig{
			Lint:         constants.DefaultLintCommand,
			FormatCheck:  constants.DefaultFormatCheckCommand,
			TypeCheck:    constants.DefaultTypeCheckCommand,
			Test:         constants.DefaultTestCommand,
			TestCoverage: constants.DefaultTestCoverageCommand,
		},
		Container: ContainerConfig{
			Engine:         constants.DefaultContainerEngine,
			Image:          constants.DefaultImageName,
			HealthURL:      constants.DefaultHealthURL,
			HostPort:       constants.DefaultHostPort,
			Port:           constants.DefaultContainerPort,
			SettleInterval: constants.DefaultSettleInterval,
			ProbeTimeout:   constants.DefaultProbeTimeout,
		},
		Registry: RegistryConfig{
			Endpoint: "",
		},
	}
}
