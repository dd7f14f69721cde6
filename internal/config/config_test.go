package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	t.Setenv("DEV_MODE", "")
	t.Setenv("PRESCRIBE_DATABASE_URL", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("DEV_MODE", "")
	t.Setenv("PRESCRIBE_DATABASE_URL", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
connection_string = "libsql://prescribe.turso.io?authToken=abc"

[engine]
load_increment = 1.25

[log]
level = "debug"
`), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "libsql://prescribe.turso.io?authToken=abc", cfg.DB.ConnectionString)
	assert.Equal(t, 1.25, cfg.Engine.LoadIncrement)
	// Keys left out keep their defaults.
	assert.Equal(t, 0.75, cfg.Engine.DefaultPercentage)
	assert.Equal(t, 0.02, cfg.Engine.DefaultWeeklyIncrement)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	t.Setenv("DEV_MODE", "")
	t.Setenv("PRESCRIBE_DATABASE_URL", "libsql://other.turso.io")
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "libsql://other.turso.io", cfg.DB.ConnectionString)

	t.Setenv("DEV_MODE", "true")
	cfg, err = LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DevConnectionString, cfg.DB.ConnectionString)
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	t.Setenv("DEV_MODE", "")
	t.Setenv("PRESCRIBE_DATABASE_URL", "")

	for name, body := range map[string]string{
		"syntax":     "[engine\n",
		"increment":  "[engine]\nload_increment = 0",
		"percentage": "[engine]\ndefault_percentage = 1.5",
		"level":      "[log]\nlevel = \"loud\"",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	var stderr bytes.Buffer
	file := filepath.Join(t.TempDir(), "prescribe.log")

	logger, closer, err := NewLogger(LogConfig{Level: "info", File: file}, &stderr)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("program generated", "weeks", 12)
	require.NoError(t, closer.Close())

	assert.NotContains(t, stderr.String(), "hidden")
	assert.Contains(t, stderr.String(), "program generated")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "weeks=12")
}
