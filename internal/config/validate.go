package config

import (
	"github.com/wwiii/pipeline/internal/errors"
)

// Validate checks the configuration for values that would make a pipeline run
// nonsensical. It returns the first problem found.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigNil
	}

	if c.Workspace.Root == "" {
		return errors.Wrap(errors.ErrConfigInvalidWorkspace, "workspace.root must not be empty")
	}

	if c.Workspace.CommandTimeout <= 0 {
		return errors.Wrap(errors.ErrConfigInvalidWorkspace, "workspace.command_timeout must be positive")
	}

	if c.Coverage.Threshold < 0 || c.Coverage.Threshold > 100 {
		return errors.Wrapf(errors.ErrConfigInvalidCoverage,
			"coverage.threshold %.1f is outside 0-100", c.Coverage.Threshold)
	}

	if c.Container.Engine == "" {
		return errors.Wrap(errors.ErrConfigInvalidContainer, "container.engine must not be empty")
	}

	if c.Container.Image == "" {
		return errors.Wrap(errors.ErrConfigInvalidContainer, "container.image must not be empty")
	}

	if c.Container.HostPort < 1 || c.Container.HostPort > 65535 {
		return errors.Wrapf(errors.ErrConfigInvalidContainer,
			"container.host_port %d is not a valid port", c.Container.HostPort)
	}

	if c.Container.Port < 1 || c.Container.Port > 65535 {
		return errors.Wrapf(errors.ErrConfigInvalidContainer,
			"container.port %d is not a valid port", c.Container.Port)
	}

	if c.Container.SettleInterval < 0 {
		return errors.Wrap(errors.ErrConfigInvalidContainer, "container.settle_interval must not be negative")
	}

	if c.Container.ProbeTimeout <= 0 {
		return errors.Wrap(errors.ErrConfigInvalidContainer, "container.probe_timeout must be positive")
	}

	return nil
}
