// Package config resolves cpfinspector settings from defaults, an optional
// YAML file, a .env file and CPFINSPECTOR_* environment variables.
//
// Later layers win: defaults < YAML file < environment. Command-line flags
// are applied on top by package cli.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cpfinspector/cpfinspector/pkg/batch"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "CPFINSPECTOR_CONFIG"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings of one run.
type Config struct {
	ValidOnly  bool     `yaml:"valid_only" env:"CPFINSPECTOR_VALID_ONLY"`
	Output     string   `yaml:"output" env:"CPFINSPECTOR_OUTPUT"`
	Delimiter  string   `yaml:"delimiter" env:"CPFINSPECTOR_DELIMITER"`
	Color      string   `yaml:"color" env:"CPFINSPECTOR_COLOR"`
	Extensions []string `yaml:"extensions" env:"CPFINSPECTOR_EXTENSIONS" envSeparator:","`
	Banner     bool     `yaml:"banner" env:"CPFINSPECTOR_BANNER"`
	Debug      bool     `yaml:"debug" env:"CPFINSPECTOR_DEBUG"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Delimiter:  ",",
		Color:      ColorAuto,
		Extensions: append([]string(nil), batch.DefaultExtensions...),
		Banner:     true,
	}
}

// Load builds a Config from defaults, the config file and the environment.
//
// The file is path when non-empty, otherwise $CPFINSPECTOR_CONFIG, otherwise
// ~/.cpfinspector/config.yaml. An explicitly named file must exist; the
// default location is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, required := resolvePath(path)
	if file != "" {
		if err := loadFile(&cfg, file, required); err != nil {
			return nil, err
		}
	}

	// The .env file is optional.
	_ = godotenv.Load()
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings for consistency.
func (c *Config) Validate() error {
	if _, err := c.DelimiterRune(); err != nil {
		return err
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want %s, %s or %s)", c.Color, ColorAuto, ColorAlways, ColorNever)
	}

	if len(c.Extensions) == 0 {
		return errors.New("at least one file extension is required")
	}
	for _, ext := range c.Extensions {
		if strings.TrimSpace(strings.TrimPrefix(ext, ".")) == "" {
			return fmt.Errorf("invalid file extension %q", ext)
		}
	}
	return nil
}

// DelimiterRune returns the input field delimiter. "tab" and "\t" select a
// tab character.
func (c *Config) DelimiterRune() (rune, error) {
	d := c.Delimiter
	if d == "tab" || d == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(d) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", d)
	}

	r, _ := utf8.DecodeRuneInString(d)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", d)
	}
	return r, nil
}

func resolvePath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		return envPath, true
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(homeDir, ".cpfinspector", "config.yaml"), false
}

func loadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}
