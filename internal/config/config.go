// Package config loads optional per-tree defaults for resub runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the root of the processed tree.
const FileName = ".resub.yaml"

// Config represents per-tree run defaults. Command-line values win over
// anything configured here.
type Config struct {
	// FilePatterns are the default filename globs used when none are given
	// on the command line.
	FilePatterns []string `yaml:"file_patterns"`

	// Exclude are regexes matched against full paths; matching files are
	// never selected.
	Exclude []string `yaml:"exclude"`
}

// Load reads the config file under root. A missing file is not an error and
// yields an empty config; a malformed file is an error.
func Load(root string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path) // #nosec G304 - path is rooted in the user-supplied tree
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return cfg, nil
}
