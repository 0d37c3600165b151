// Package config loads the ltl2nba configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds the settings shared by every command. Flags given on the
// command line override the values loaded from file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `toml:"log_format"`

	// Format selects the translate output: dot, text or json.
	Format string `toml:"format"`

	// RankDir is the Graphviz layout direction.
	RankDir string `toml:"rankdir"`

	// MaxStates bounds the NBA size; 0 disables the bound.
	MaxStates int `toml:"max_states"`

	// MaxPropositions bounds the alphabet (2^n letters).
	MaxPropositions int `toml:"max_propositions"`

	// FormulaLabels labels DOT nodes with their obligations.
	FormulaLabels bool `toml:"formula_labels"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Format:          "dot",
		RankDir:         "LR",
		MaxStates:       0,
		MaxPropositions: 16,
	}
}

// Load reads path over the defaults. Keys the file sets override the
// defaults; unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.ToLower(c.LogLevel)
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.Format = strings.ToLower(c.Format)
	c.RankDir = strings.ToUpper(c.RankDir)
}

// Validate checks every field and reports the first violation.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q: must be 'debug', 'info', 'warn', or 'error'", ErrInvalid, c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format %q: must be 'text' or 'json'", ErrInvalid, c.LogFormat)
	}
	switch c.Format {
	case "dot", "text", "json":
	default:
		return fmt.Errorf("%w: format %q: must be 'dot', 'text', or 'json'", ErrInvalid, c.Format)
	}
	switch c.RankDir {
	case "LR", "RL", "TB", "BT":
	default:
		return fmt.Errorf("%w: rankdir %q", ErrInvalid, c.RankDir)
	}
	if c.MaxStates < 0 {
		return fmt.Errorf("%w: max_states %d is negative", ErrInvalid, c.MaxStates)
	}
	if c.MaxPropositions < 1 || c.MaxPropositions > 30 {
		return fmt.Errorf("%w: max_propositions %d outside [1, 30]", ErrInvalid, c.MaxPropositions)
	}
	return nil
}
