package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"rangepresets/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "")

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	require.False(t, exists)
	require.NotEmpty(t, resolved)

	want := config.Default()
	require.Equal(t, want, *cfg)
	require.Equal(t, 100, cfg.Presets.LastRangeLength)
}

func TestLoadOverridesFromFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
bind = "127.0.0.1:9000"

[logging]
level = "DEBUG"
format = "json"

[presets]
last_range_length = 48
default_frame_start = 1001
default_frame_end = 1100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, path, resolved)
	require.Equal(t, "127.0.0.1:9000", cfg.Server.Bind)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, 48, cfg.Presets.LastRangeLength)
	require.Equal(t, 1001, cfg.Presets.DefaultFrameStart)
	require.Equal(t, 1100, cfg.Presets.DefaultFrameEnd)
	require.Equal(t, 256, cfg.Presets.JournalSize)
}

func TestLoadKeepsZeroJournalSize(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[presets]\njournal_size = 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 0, cfg.Presets.JournalSize)
}

func TestLoadRoundTripsEncodedDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	data, err := toml.Marshal(config.Default())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.Default(), *cfg)
}

func TestLoadPortEnvOverridesBind(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "9191")

	cfg, _, _, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, ":9191", cfg.Server.Bind)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[presets]\nlast_range = 3\n"), 0o644))

	_, _, _, err := config.Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"empty bind", func(c *config.Config) { c.Server.Bind = "" }},
		{"bind without port", func(c *config.Config) { c.Server.Bind = "localhost" }},
		{"unknown level", func(c *config.Config) { c.Logging.Level = "verbose" }},
		{"unknown format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"negative journal", func(c *config.Config) { c.Presets.JournalSize = -1 }},
		{"inverted default range", func(c *config.Config) {
			c.Presets.DefaultFrameStart = 10
			c.Presets.DefaultFrameEnd = 5
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}

	cfg := config.Default()
	require.NoError(t, cfg.Validate())
}
