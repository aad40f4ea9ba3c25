// Package config loads the optional llmcontext configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the configuration file looked up in the working
// directory when --config is not given.
const DefaultFileName = ".llmcontext.yaml"

// DefaultOutputFile is where the combined document is written when neither
// the configuration file nor the --output flag names a destination.
const DefaultOutputFile = "llmcontext.txt"

// Config represents llmcontext configuration options. Explicitly set
// command-line flags override every field.
type Config struct {
	// Output is the destination path of the combined document.
	Output string `yaml:"output"`

	// Verbose enables debug diagnostics.
	Verbose bool `yaml:"verbose"`

	// MaxFileSizeKB skips files larger than this many KB. 0 means unlimited.
	MaxFileSizeKB int `yaml:"max_file_size_kb"`

	// MaxWorkers bounds concurrent file reads. 0 means one per CPU.
	MaxWorkers int `yaml:"max_workers"`

	// GlobalIgnore is the path of an ignore file applied to every root at
	// the lowest precedence.
	GlobalIgnore string `yaml:"global_ignore"`

	// Ignore lists extra ignore patterns appended after all discovered
	// rules.
	Ignore []string `yaml:"ignore"`
}

// DefaultConfig returns a Config populated with default values.
func DefaultConfig() *Config {
	return &Config{
		Output: DefaultOutputFile,
	}
}

// LoadConfig loads configuration from the file at path. A missing file
// returns defaults without error; an unreadable or malformed file is an
// error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
