// Package config loads the optional basm project file.
//
// The project file is either TOML (basm.toml) or YAML (basm.yaml, basm.yml);
// the format is chosen by file extension. Every field is optional and
// command-line flags override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kytekode/basm/internal/types"
)

// File format of a project file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Dump formats accepted by the format field.
const (
	DumpText = "text"
	DumpJSON = "json"
	DumpYAML = "yaml"
)

// MaxVerbose is the highest meaningful verbosity (trace logging).
const MaxVerbose = 2

// FileNames are the project file names looked up by Discover, in order.
var FileNames = []string{"basm.toml", "basm.yaml", "basm.yml"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds the project settings.
type Config struct {
	Output     string   `toml:"output" yaml:"output"`
	Verbose    int      `toml:"verbose" yaml:"verbose"`
	Color      *bool    `toml:"color" yaml:"color"`
	Format     string   `toml:"format" yaml:"format"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
	Only       []string `toml:"only" yaml:"only"` // diagnostic code globs to report, all when empty

	path string
}

// Default returns the settings used when no project file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the project file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := LoadFromString(string(content), DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// LoadFromString decodes a project file held in memory.
func LoadFromString(content string, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal([]byte(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Discover loads the first project file found in dir. When none exists the
// defaults are returned.
func Discover(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return Load(path)
		}
	}
	return Default(), nil
}

// DetectFormat determines the file format from the extension. Unknown
// extensions are read as TOML.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing settings.
func (c *Config) applyDefaults() {
	if c.Color == nil {
		color := true
		c.Color = &color
	}
	if c.Format == "" {
		c.Format = DumpText
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".basm"}
	}
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Verbose < 0 || c.Verbose > MaxVerbose {
		return fmt.Errorf("%w: verbose must be between 0 and %d, got %d", ErrInvalid, MaxVerbose, c.Verbose)
	}
	if !slices.Contains([]string{DumpText, DumpJSON, DumpYAML}, c.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: extension %q must start with a dot", ErrInvalid, ext)
		}
	}
	for _, pattern := range c.Only {
		if !types.KnownCode(pattern) {
			return fmt.Errorf("%w: %q matches no diagnostic code", ErrInvalid, pattern)
		}
	}
	return nil
}

// Visible returns the diagnostics selected by Only.
func (c *Config) Visible(diags []types.Diagnostic) []types.Diagnostic {
	if len(c.Only) == 0 {
		return diags
	}
	return types.FilterCodes(diags, c.Only...)
}

// ColorEnabled reports whether colored output is on.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Path returns the file the settings came from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}
