package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hklread.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HKLREAD_FORMAT", "")
	t.Setenv("HKLREAD_LOG_LEVEL", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HKLREAD_FORMAT", "")
	t.Setenv("HKLREAD_LOG_LEVEL", "")
	cfg, err := Load(writeConfig(t, "strict: true\nsummary: true\nshells: 5\nformat: JSON\nlog_level: debug\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.True(t, cfg.Summary)
	assert.Equal(t, 5, cfg.Shells)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("HKLREAD_FORMAT", "")
	t.Setenv("HKLREAD_LOG_LEVEL", "")
	for name, content := range map[string]string{
		"unknown key":  "strikt: true\n",
		"bad format":   "format: csv\n",
		"bad shells":   "shells: -1\n",
		"bad level":    "log_level: loud\n",
		"invalid yaml": "format: [table\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HKLREAD_FORMAT", "hkl")
	t.Setenv("HKLREAD_LOG_LEVEL", "warn")
	cfg, err := Load(writeConfig(t, "format: json\n"))
	require.NoError(t, err)
	assert.Equal(t, FormatHKL, cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv("HKLREAD_FORMAT", "xml")
	_, err = Load("")
	assert.Error(t, err)
}
