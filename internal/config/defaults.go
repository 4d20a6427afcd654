package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults are walk settings read from a YAML file. Command-line flags win
// over them. Booleans in the file can only switch a feature on.
type Defaults struct {
	Recurse    bool         `yaml:"recurse"`
	Attributes bool         `yaml:"attributes"`
	Prune      []string     `yaml:"prune"`
	Include    string       `yaml:"include"`
	MaxDepth   int          `yaml:"max_depth"`
	Format     OutputFormat `yaml:"format"`
	LogLevel   string       `yaml:"log_level"`
}

// LoadDefaults reads the defaults file. With no explicit path a missing
// .treewalk.yaml yields empty defaults; an explicit path must exist.
func LoadDefaults(explicit string) (*Defaults, error) {
	path, ok := defaultsPath(explicit)
	if !ok {
		return &Defaults{}, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 - user-selected config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseDefaults(data, path)
}

// ParseDefaults decodes YAML defaults. Unknown keys are rejected.
func ParseDefaults(data []byte, source string) (*Defaults, error) {
	defaults := &Defaults{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	// An empty file decodes to io.EOF and means no defaults.
	if err := decoder.Decode(defaults); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", source, err)
	}

	return defaults, nil
}

// ApplyDefaults fills every option the command line left unset.
func (cfg *Config) ApplyDefaults(d *Defaults) {
	if d == nil {
		return
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = d.LogLevel
	}

	if cfg.Stat != nil && cfg.Stat.Format == "" {
		cfg.Stat.Format = d.Format
	}

	w := cfg.Walk
	if w == nil {
		return
	}

	w.Recurse = w.Recurse || d.Recurse
	w.Attributes = w.Attributes || d.Attributes

	if len(w.Prune) == 0 {
		w.Prune = d.Prune
	}

	if w.Include == "" {
		w.Include = d.Include
	}

	if w.MaxDepth == 0 {
		w.MaxDepth = d.MaxDepth
	}

	if w.Format == "" {
		w.Format = d.Format
	}
}
