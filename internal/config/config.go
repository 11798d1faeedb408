// Package config loads pyfang settings from file, environment, and defaults.
package config

import (
	"errors"
	"fmt"
)

// Output format names accepted by the CLI and config file.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrInvalidFormat is returned when the configured output format is unknown.
var ErrInvalidFormat = errors.New("invalid output format")

// ErrInvalidMinRank is returned when the configured minimum rank is not A-F.
var ErrInvalidMinRank = errors.New("invalid minimum rank")

// Config is the top-level configuration struct for pyfang.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Format  string   `mapstructure:"format"`
	MinRank string   `mapstructure:"min_rank"`
	Exclude []string `mapstructure:"exclude"`
	NoColor bool     `mapstructure:"no_color"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}

	if len(c.MinRank) != 1 || c.MinRank[0] < 'A' || c.MinRank[0] > 'F' {
		return fmt.Errorf("%w: %q", ErrInvalidMinRank, c.MinRank)
	}

	return nil
}
