package config

import (
	"os"
	"path/filepath"

	"github.com/wwiii/pipeline/internal/constants"
	"github.com/wwiii/pipeline/internal/errors"
)

// GlobalConfigDir returns the path to the user-wide pipeline directory
// (~/.pipeline).
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine home directory")
	}

	return filepath.Join(home, constants.PipelineHome), nil
}

// GlobalConfigPath returns the path to the user-wide config file
// (~/.pipeline/config.yaml).
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigDir returns the path to the project-level pipeline directory
// (.pipeline under the workspace root).
func ProjectConfigDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, constants.PipelineHome)
}

// ProjectConfigPath returns the path to the project-level config file
// (.pipeline/config.yaml under the workspace root).
func ProjectConfigPath(workspaceRoot string) string {
	return filepath.Join(ProjectConfigDir(workspaceRoot), constants.ConfigFileName)
}

// RunLockPath returns the path to the lock file that serializes pipeline runs
// against a single workspace.
func RunLockPath(workspaceRoot string) string {
	return filepath.Join(ProjectConfigDir(workspaceRoot), constants.RunLockFileName)
}

// LogFilePath returns the path to the rotating log file
// (~/.pipeline/logs/pipeline.log).
func LogFilePath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, constants.LogsDir, constants.LogFileName), nil
}
