package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/coulomb/internal/core/interaction"
	"github.com/zeusync/coulomb/internal/core/observability/log"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	p, err := cfg.ResolvePreset()
	require.NoError(t, err)
	assert.Equal(t, interaction.WebPreset(), p)
	assert.True(t, cfg.Render.ShowFormula)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
preset: desktop
server:
  listen_addr: 0.0.0.0:9090
  read_timeout: 90s
log:
  level: debug
  encoding: console
render:
  title: Fuerza eléctrica
  grid: false
  show_formula: false
  arrow_scale: 50000
`))
	require.NoError(t, err)

	assert.Equal(t, "desktop", cfg.Preset)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.ListenAddr)
	assert.Equal(t, 90*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 25*time.Second, cfg.Server.PingInterval, "untouched fields keep defaults")
	assert.Equal(t, "console", cfg.Log.Encoding)
	assert.Equal(t, "Fuerza eléctrica", cfg.Render.Title)
	assert.False(t, cfg.Render.Grid)
	assert.Equal(t, 5e4, cfg.Render.ArrowScale)

	l, err := cfg.Logger()
	require.NoError(t, err)
	assert.Equal(t, log.LevelDebug, l.Level())
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("preset: web\ncolour: blue\n"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"preset":   "preset: mobile\n",
		"level":    "log:\n  level: chatty\n",
		"encoding": "log:\n  encoding: xml\n",
		"sessions": "server:\n  max_sessions: 0\n",
		"timeouts": "server:\n  read_timeout: 10s\n  ping_interval: 20s\n",
		"addr":     "server:\n  listen_addr: ' '\n",
		"write":    "server:\n  write_timeout: 0s\n",
		"grace":    "server:\n  shutdown_grace: -1s\n",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestControlOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
controls:
  - id: q1
    min: -2
    max: 2
    step: 0.5
    default: 0.5
`))
	require.NoError(t, err)

	p, err := cfg.ResolvePreset()
	require.NoError(t, err)
	q1, err := p.Control(interaction.ControlQ1)
	require.NoError(t, err)
	assert.Equal(t, 0.5, q1.Step)
	assert.Equal(t, "Charge q1 (µC)", q1.Label, "label falls back to the preset's")

	_, err = Parse([]byte("controls:\n  - id: q7\n    min: 0\n    max: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"COULOMB_PRESET":       "desktop",
		"COULOMB_LISTEN_ADDR":  ":7000",
		"COULOMB_LOG_LEVEL":    "warn",
		"COULOMB_MAX_SESSIONS": "3",
		"COULOMB_SHOW_FORMULA": "false",
		"COULOMB_LOG_FILE":     "/tmp/coulomb.log",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(lookup))
	assert.Equal(t, "desktop", cfg.Preset)
	assert.Equal(t, ":7000", cfg.Server.ListenAddr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Server.MaxSessions)
	assert.False(t, cfg.Render.ShowFormula)
	assert.Equal(t, "/tmp/coulomb.log", cfg.Log.File)

	env["COULOMB_MAX_SESSIONS"] = "many"
	assert.ErrorIs(t, cfg.ApplyEnv(lookup), ErrInvalidConfig)
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coulomb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("preset: desktop\nlog:\n  level: error\n"), 0o600))

	t.Setenv("COULOMB_LISTEN_ADDR", "127.0.0.1:0")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "desktop", cfg.Preset)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:0", cfg.Server.ListenAddr)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoggerWritesToFile(t *testing.T) {
	cfg := Default()
	cfg.Log.File = filepath.Join(t.TempDir(), "coulomb.log")

	logger, err := cfg.Logger()
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
