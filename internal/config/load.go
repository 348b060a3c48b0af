package config

import (
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/wwiii/pipeline/internal/errors"
)

// Load reads configuration with layered precedence: built-in defaults, then
// the global config file, then the project config file, then PIPELINE_*
// environment variables. Missing config files are not an error; a present but
// malformed file is.
func Load(workspaceRoot string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("PIPELINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := mergeConfigFile(v, globalPath); err != nil {
			return nil, err
		}
	}

	if err := mergeConfigFile(v, ProjectConfigPath(workspaceRoot)); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to parse configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigFile merges a single YAML config file into v. A missing file is
// skipped silently.
func mergeConfigFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr // missing config files are expected
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.MergeInConfig(); err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}

	return nil
}

// viperDecoderOption returns the decoder option used when unmarshaling
// configuration, so duration fields accept strings like "5m".
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	))
}

// setDefaults registers the built-in defaults on v so that keys absent from
// every config file and the environment still resolve.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("workspace.root", defaults.Workspace.Root)
	v.SetDefault("workspace.command_timeout", defaults.Workspace.CommandTimeout)

	v.SetDefault("coverage.threshold", defaults.Coverage.Threshold)

	v.SetDefault("gates.lint", defaults.Gates.Lint)
	v.SetDefault("gates.format_check", defaults.Gates.FormatCheck)
	v.SetDefault("gates.type_check", defaults.Gates.TypeCheck)
	v.SetDefault("gates.test", defaults.Gates.Test)
	v.SetDefault("gates.test_coverage", defaults.Gates.TestCoverage)

	v.SetDefault("container.engine", defaults.Container.Engine)
	v.SetDefault("container.image", defaults.Container.Image)
	v.SetDefault("container.health_url", defaults.Container.HealthURL)
	v.SetDefault("container.host_port", defaults.Container.HostPort)
	v.SetDefault("container.port", defaults.Container.Port)
	v.SetDefault("container.settle_interval", defaults.Container.SettleInterval)
	v.SetDefault("container.probe_timeout", defaults.Container.ProbeTimeout)

	v.SetDefault("registry.endpoint", defaults.Registry.Endpoint)
}
