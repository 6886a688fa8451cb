package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secretcode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
frontend: window
passcode: 28
countdown: 5s
storage:
  driver: sqlite
  path: progress.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FrontendWindow, cfg.Frontend)
	assert.Equal(t, 28, cfg.Passcode)
	assert.Equal(t, 5*time.Second, cfg.Countdown)
	assert.Equal(t, StorageConfig{Driver: "sqlite", Path: "progress.db"}, cfg.Storage)
	assert.Equal(t, "en_GB", cfg.Locale, "unset keys keep their defaults")
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeFile(t, "frontend: window\n")
	t.Setenv("SECRETCODE_FRONTEND", "tui")
	t.Setenv("SECRETCODE_STORAGE_DRIVER", "memory")
	t.Setenv("SECRETCODE_LOG_LEVEL", "debug")
	t.Setenv("SECRETCODE_BINDINGS", "Hint:f2,Back:tab")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FrontendTerminal, cfg.Frontend)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, map[string]string{"Hint": "f2", "Back": "tab"}, cfg.Bindings)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeFile(t, "frontend: web\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeFile(t, "storage:\n  driver: redis\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeFile(t, "frontend: [\n"))
	assert.Error(t, err)
}

func TestResolvePasscode(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"explicit", Config{Passcode: 28, Query: "?code=7"}, 28},
		{"query", Config{Query: "?code=28"}, 28},
		{"query without mark", Config{Query: "level=2&code=14"}, 14},
		{"not a number", Config{Query: "?code=abc"}, 0},
		{"absent", Config{}, 0},
		{"negative", Config{Query: "?code=-4"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.ResolvePasscode())
		})
	}
}
