package config

import (
	"bytes"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wwiii/pipeline/internal/errors"
)

// configFileHeader is written at the top of generated config files.
const configFileHeader = `# Pipeline runner configuration.
# Values here override the built-in defaults; environment variables with the
# PIPELINE_ prefix override values here (e.g. PIPELINE_COVERAGE_THRESHOLD=90).
`

// WriteDefault writes the built-in default configuration to path as annotated
// YAML, creating parent directories as needed. It refuses to overwrite an
// existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrConfigExists, "%s", path)
	}

	data, err := marshalConfig(DefaultConfig())
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err = os.MkdirAll(dir, 0o750); err != nil {
			return errors.Wrapf(err, "failed to create config directory %s", dir)
		}
	}

	if err = os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// marshalConfig renders cfg as YAML with the explanatory header prepended.
func marshalConfig(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(configFileHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to encode configuration")
	}

	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode configuration")
	}

	return buf.Bytes(), nil
}
