// Package config handles reading and writing .rollcall/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .rollcall/config.yaml.
type Config struct {
	Version   int           `yaml:"version"`
	Reference string        `yaml:"reference" env:"ROLLCALL_REFERENCE"`
	Verbose   bool          `yaml:"verbose" env:"ROLLCALL_VERBOSE"`
	Parser    ParserConfig  `yaml:"parser"`
	Report    ReportConfig  `yaml:"report"`
	Cleanup   CleanupConfig `yaml:"cleanup"`
}

// ParserConfig controls transcript line classification.
type ParserConfig struct {
	IgnorePrefix   string `yaml:"ignore_prefix"`
	ExceptionsFile string `yaml:"exceptions_file" env:"ROLLCALL_EXCEPTIONS"`
	StaleLineLimit int    `yaml:"stale_line_limit"` // 0 = never abandon
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Style          string `yaml:"style" env:"ROLLCALL_STYLE"` // "plain" | "fancy"
	Marker         string `yaml:"marker"`
	Separator      string `yaml:"separator"`
	SeparatorWidth int    `yaml:"separator_width"`
}

// CleanupConfig controls pruning of archived runs.
type CleanupConfig struct {
	MaxAgeDays int `yaml:"max_age_days"`
}

const (
	// Dir is the project-local state directory.
	Dir        = ".rollcall"
	configFile = "config.yaml"
)

// Path returns the config file path for the project rooted at dir.
func Path(dir string) string {
	return filepath.Join(dir, Dir, configFile)
}

// ReadConfig reads .rollcall/config.yaml from the given project directory.
// dir is the project root (not .rollcall/ itself). Keys missing from the
// file keep their DefaultConfig values.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	return ReadConfigFile(Path(dir))
}

// ReadConfigFile reads a config file at an explicit path.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to .rollcall/config.yaml in the given project
// directory. Creates the .rollcall/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, Dir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Load reads the project config, falling back to defaults when the file
// does not exist, then applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = DefaultConfig()
	}
	return finish(cfg)
}

// LoadFile is Load for an explicit config path, which must exist.
func LoadFile(path string) (*Config, error) {
	cfg, err := ReadConfigFile(path)
	if err != nil {
		return nil, err
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the YAML types cannot express.
func (c *Config) Validate() error {
	switch c.Report.Style {
	case "plain", "fancy":
	default:
		return fmt.Errorf("invalid report style %q (want plain or fancy)", c.Report.Style)
	}
	if c.Parser.StaleLineLimit < 0 {
		return fmt.Errorf("invalid stale_line_limit %d (must be >= 0)", c.Parser.StaleLineLimit)
	}
	return nil
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		Reference: "Cidel",
		Verbose:   false,
		Parser: ParserConfig{
			IgnorePrefix:   "(From ",
			ExceptionsFile: "exceptions.txt",
			StaleLineLimit: 0,
		},
		Report: ReportConfig{
			Style:          "plain",
			Marker:         "x",
			Separator:      "\U0001F3B2",
			SeparatorWidth: 25,
		},
		Cleanup: CleanupConfig{
			MaxAgeDays: 30,
		},
	}
}
