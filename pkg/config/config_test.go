package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory and clears CPFINSPECTOR_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{
		EnvConfigPath,
		"CPFINSPECTOR_VALID_ONLY",
		"CPFINSPECTOR_OUTPUT",
		"CPFINSPECTOR_DELIMITER",
		"CPFINSPECTOR_COLOR",
		"CPFINSPECTOR_EXTENSIONS",
		"CPFINSPECTOR_BANNER",
		"CPFINSPECTOR_DEBUG",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, []string{".csv", ".txt"}, cfg.Extensions)
}

func TestLoad_DefaultFileInHome(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, ".cpfinspector", "config.yaml"), "valid_only: true\ncolor: never\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.ValidOnly)
	assert.Equal(t, ColorNever, cfg.Color)
	assert.Equal(t, ",", cfg.Delimiter)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "delimiter: \";\"\nextensions: [\".csv\"]\nbanner: false\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.Delimiter)
	assert.Equal(t, []string{".csv"}, cfg.Extensions)
	assert.False(t, cfg.Banner)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "env.yaml")
	writeConfig(t, path, "output: results.csv\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "results.csv", cfg.Output)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeConfig(t, path, "color: never\nvalid_only: false\n")
	t.Setenv("CPFINSPECTOR_COLOR", "always")
	t.Setenv("CPFINSPECTOR_VALID_ONLY", "true")
	t.Setenv("CPFINSPECTOR_EXTENSIONS", ".csv,.dat")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.True(t, cfg.ValidOnly)
	assert.Equal(t, []string{".csv", ".dat"}, cfg.Extensions)
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeConfig(t, path, "valid_only: [not a bool\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"semicolon", func(c *Config) { c.Delimiter = ";" }, false},
		{"tab keyword", func(c *Config) { c.Delimiter = "tab" }, false},
		{"empty delimiter", func(c *Config) { c.Delimiter = "" }, true},
		{"multi-char delimiter", func(c *Config) { c.Delimiter = ";;" }, true},
		{"quote delimiter", func(c *Config) { c.Delimiter = `"` }, true},
		{"bad color", func(c *Config) { c.Color = "rainbow" }, true},
		{"no extensions", func(c *Config) { c.Extensions = nil }, true},
		{"blank extension", func(c *Config) { c.Extensions = []string{"."} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := Default()
	r, err := cfg.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ',', r)

	cfg.Delimiter = `\t`
	r, err = cfg.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)
}
