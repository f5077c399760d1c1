package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultFPS, cfg.App.FPS)
	assert.Equal(t, defaultReloadInterval, cfg.App.ReloadInterval)
	assert.Empty(t, cfg.App.Scene)
	assert.False(t, cfg.App.ShowFooter)
	require.NoError(t, Validate(cfg))
}

func TestLoadArgsPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menuz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 10\nwidth: 50\nfooter: true\nroot-menu: audio\nreload-interval: 3s\n"), 0o600))

	env := []string{"MENUZ_CONFIG=" + path, "MENUZ_WIDTH=70", "MENUZ_TRACE=1"}
	cfg, err := LoadArgs([]string{"--fps", "60"}, env)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.App.FPS, "flag beats file")
	assert.Equal(t, 70, cfg.App.Width, "env beats file")
	assert.True(t, cfg.App.ShowFooter, "file beats default")
	assert.Equal(t, "audio", cfg.App.RootMenu)
	assert.Equal(t, 3*time.Second, cfg.App.ReloadInterval)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "60", cfg.Flags["fps"])
}

func TestLoadArgsConfigFlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "env.toml")
	flagFile := filepath.Join(dir, "flag.toml")
	require.NoError(t, os.WriteFile(envFile, []byte("height = 11\n"), 0o600))
	require.NoError(t, os.WriteFile(flagFile, []byte("height = 22\n"), 0o600))

	cfg, err := LoadArgs([]string{"--config=" + flagFile}, []string{"MENUZ_CONFIG=" + envFile})
	require.NoError(t, err)
	assert.Equal(t, 22, cfg.App.Height)
	assert.Equal(t, flagFile, cfg.File)
}

func TestLoadArgsErrors(t *testing.T) {
	_, err := LoadArgs([]string{"--width", "-1"}, nil)
	assert.ErrorContains(t, err, "width must be >= 0")

	_, err = LoadArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	assert.Error(t, err)

	_, err = LoadArgs([]string{"--bogus"}, nil)
	assert.Error(t, err)
}

func TestEnvFallbacksIgnoreGarbage(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"MENUZ_FPS=fast", "MENUZ_RELOAD_INTERVAL=soon", "MENUZ_FOOTER=maybe"})
	require.NoError(t, err)
	assert.Equal(t, defaultFPS, cfg.App.FPS)
	assert.Equal(t, defaultReloadInterval, cfg.App.ReloadInterval)
	assert.False(t, cfg.App.ShowFooter)
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)

	bad := cfg
	bad.App.FPS = 0
	assert.ErrorIs(t, Validate(bad), ErrInvalidFPS)

	bad = cfg
	bad.App.ReloadInterval = -time.Second
	assert.ErrorIs(t, Validate(bad), ErrInvalidInterval)

	bad = cfg
	bad.App.Scene = filepath.Join(t.TempDir(), "nope.yaml")
	assert.ErrorIs(t, Validate(bad), ErrSceneNotFound)
}

func TestScanFlag(t *testing.T) {
	v, ok := scanFlag([]string{"-config", "a.yaml"}, "config")
	assert.True(t, ok)
	assert.Equal(t, "a.yaml", v)

	_, ok = scanFlag([]string{"--", "--config", "a.yaml"}, "config")
	assert.False(t, ok)

	_, ok = scanFlag([]string{"---config", "a.yaml"}, "config")
	assert.False(t, ok)
}
