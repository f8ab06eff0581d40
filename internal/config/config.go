// Package config loads the optional .philisp.yaml file a REPL or CLI
// invocation consults for defaults, grounded on the teacher's
// internal/units search-path handling (internal/units/registry.go,
// internal/units/search.go): a small ordered list of candidate
// locations, first one found wins, absence is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config is the shape of .philisp.yaml.
type Config struct {
	// Prelude lists file paths loaded, in order, into a fresh Runtime
	// before a REPL prompt or script runs, the way a .bashrc seeds a
	// shell.
	Prelude []string `yaml:"prelude"`

	// History is the REPL line-history file path read from the config
	// file; the repl command does not read or write any history file.
	History string `yaml:"history"`

	// MaxDepth overrides internal/eval.DefaultMaxDepth when positive.
	MaxDepth int `yaml:"max_depth"`
}

// SearchPaths returns the ordered candidate locations for
// .philisp.yaml: $PHILISP_CONFIG if set, then ./.philisp.yaml, then
// $HOME/.philisp.yaml.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv("PHILISP_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, ".philisp.yaml")
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".philisp.yaml"))
	}
	return paths
}

// Load searches SearchPaths in order and parses the first file found.
// A Config zero value, and no error, is returned if none exist —
// missing configuration is a normal, fall-back-to-defaults outcome,
// not a failure.
func Load() (*Config, error) {
	for _, path := range SearchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &Config{}, nil
}
