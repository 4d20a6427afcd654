// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/joe/treewalk/internal/util"
	"github.com/joe/treewalk/pkg/filesystem"
)

// Exported constants.
const (
	// DefaultConfigFile is read from the working directory when present.
	DefaultConfigFile = ".treewalk.yaml"
	// ConfigEnvVar names a defaults file explicitly.
	ConfigEnvVar = "TREEWALK_CONFIG"
)

// Exported variables.
var (
	ErrNoCommand       = errors.New("a command is required: walk, stat, path or cwd")
	ErrConflictingMode = errors.New("choose at most one of --canonical, --name and --dir")
	ErrNegativeDepth   = errors.New("--max-depth must not be negative")
)

// OutputFormat selects how walk and stat results are written.
type OutputFormat string

// Output formats.
const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat parses a string into an OutputFormat
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return FormatText, nil
	case "json", "jsonl", "ndjson":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("invalid format: %s (valid: text, json)", s) //nolint:err113 // Validation error with actual value
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg and yaml
func (f *OutputFormat) UnmarshalText(text []byte) error {
	parsed, err := ParseOutputFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// PathMode selects what `treewalk path` prints.
type PathMode int

const (
	// PathCanonical prints the absolute path with symlinks resolved.
	PathCanonical PathMode = iota
	// PathName prints the last element.
	PathName
	// PathDir prints everything but the last element.
	PathDir
)

// WalkCmd lists the entries under a local path or an sftp:// URL.
type WalkCmd struct {
	Location    string       `arg:"positional" default:"." help:"Directory to walk: a local path or sftp://user@host[:port]/path"`
	Recurse     bool         `arg:"-r,--recurse" help:"Descend into subdirectories"`
	Attributes  bool         `arg:"-a,--attributes" help:"Show kind, size and timestamps for each entry"`
	Prune       []string     `arg:"--prune,separate" help:"Skip the contents of directories matching this glob (repeatable)"`
	Include     string       `arg:"--include" help:"Only report entries matching this glob"`
	MaxDepth    int          `arg:"--max-depth" help:"Do not descend below this depth (0 = unlimited)"`
	Format      OutputFormat `arg:"-f,--format" help:"Output format: text|json"`
	Interactive bool         `arg:"-i,--interactive" help:"Watch the walk in a terminal UI"`
	Strict      bool         `arg:"--strict" help:"Exit with status 1 when any entry failed"`
}

// StatCmd prints the attributes of paths, following symlinks.
type StatCmd struct {
	Paths  []string     `arg:"positional,required" help:"Paths to inspect"`
	Format OutputFormat `arg:"-f,--format" help:"Output format: text|json"`
}

// PathCmd prints a transformed path.
type PathCmd struct {
	Path      string `arg:"positional,required" help:"Path to transform"`
	Canonical bool   `arg:"--canonical" help:"Absolute path with symlinks resolved (default)"`
	Name      bool   `arg:"--name" help:"Last path element"`
	Dir       bool   `arg:"--dir" help:"All but the last path element"`

	mode PathMode
}

// Mode returns the selected transformation.
func (c *PathCmd) Mode() PathMode {
	return c.mode
}

// CwdCmd prints, and optionally changes, the working directory.
type CwdCmd struct {
	Change string `arg:"--change" help:"Change to this directory first"`
}

// Config holds the application configuration
type Config struct {
	Walk *WalkCmd `arg:"subcommand:walk" help:"Walk a directory tree"`
	Stat *StatCmd `arg:"subcommand:stat" help:"Show file attributes"`
	Path *PathCmd `arg:"subcommand:path" help:"Print a canonical path, file name or directory name"`
	Cwd  *CwdCmd  `arg:"subcommand:cwd" help:"Print or change the working directory"`

	ConfigFile string `arg:"--config,env:TREEWALK_CONFIG" help:"Defaults file (default .treewalk.yaml if present)"`
	LogLevel   string `arg:"--log-level" help:"Diagnostics level: trace|debug|info|warn|error|off (default warn)"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "Walk directory trees locally or over SFTP and inspect file attributes"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "treewalk 1.0.0"
}

// Command returns the name of the selected subcommand, or "".
func (cfg *Config) Command() string {
	switch {
	case cfg.Walk != nil:
		return "walk"
	case cfg.Stat != nil:
		return "stat"
	case cfg.Path != nil:
		return "path"
	case cfg.Cwd != nil:
		return "cwd"
	default:
		return ""
	}
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	arg.MustParse(cfg)

	return finish(cfg)
}

// ParseArgs parses args (without the program name). Help and version
// requests come back as arg.ErrHelp and arg.ErrVersion.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	parser, err := arg.NewParser(arg.Config{Program: "treewalk"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	if err := parser.Parse(args); err != nil {
		return nil, err //nolint:wrapcheck // go-arg sentinels must stay comparable
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	defaults, err := LoadDefaults(cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults(defaults)

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
//
//nolint:cyclop // One check per option
func PostProcessConfig(cfg *Config) (*Config, error) {
	if cfg.Command() == "" {
		return nil, ErrNoCommand
	}

	if _, err := util.ParseLogLevel(cfg.LogLevel); err != nil {
		return nil, err //nolint:wrapcheck // Message already names the option
	}

	if cfg.Walk != nil {
		if err := cfg.Walk.validate(); err != nil {
			return nil, err
		}
	}

	if cfg.Stat != nil && cfg.Stat.Format == "" {
		cfg.Stat.Format = FormatText
	}

	if cfg.Path != nil {
		if err := cfg.Path.resolveMode(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (w *WalkCmd) validate() error {
	if w.Format == "" {
		w.Format = FormatText
	}

	if w.Location == "" {
		w.Location = "."
	}

	if w.MaxDepth < 0 {
		return ErrNegativeDepth
	}

	for _, pattern := range append([]string{w.Include}, w.Prune...) {
		if pattern != "" && !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid glob pattern: %q", pattern) //nolint:err113 // Validation error with actual value
		}
	}

	if strings.HasPrefix(w.Location, "sftp://") {
		if _, err := filesystem.ParseLocation(w.Location); err != nil {
			return fmt.Errorf("invalid location: %w", err)
		}
	}

	return nil
}

func (c *PathCmd) resolveMode() error {
	selected := 0

	for _, on := range []bool{c.Canonical, c.Name, c.Dir} {
		if on {
			selected++
		}
	}

	if selected > 1 {
		return ErrConflictingMode
	}

	switch {
	case c.Name:
		c.mode = PathName
	case c.Dir:
		c.mode = PathDir
	default:
		c.mode = PathCanonical
	}

	return nil
}

// defaultsPath picks the defaults file: the explicit one, else
// .treewalk.yaml when it exists.
func defaultsPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, true
	}

	return "", false
}
