package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ingyamilmolinar/shimon/core/model"
	"github.com/ingyamilmolinar/shimon/core/round"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultsMatchStockGame(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, round.DefaultConfig(), cfg.Round())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 15*time.Millisecond, cfg.Timing.Debounce)
	assert.True(t, cfg.Audio.Enabled)
	assert.Empty(t, cfg.Metrics.Addr)
	assert.Equal(t, "Q", cfg.Sim.Keys.Red)
	assert.Equal(t, 16*time.Millisecond, cfg.Sim.Tick)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
game:
  confuser: false
  confuser_toggle: red
  seed: 42
timing:
  cue_on: 300ms
  input_timeout: 4s
invite:
  min: 10s
  max: 15s
sim:
  keys:
    red: J
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	rc := cfg.Round()
	assert.False(t, rc.Confuser)
	assert.Equal(t, model.Red, rc.ConfuserToggle)
	assert.Equal(t, 300*time.Millisecond, rc.Timing.CueOn)
	assert.Equal(t, 4*time.Second, rc.Timing.InputTimeout)
	assert.Equal(t, 250*time.Millisecond, rc.Timing.CueOnMin, "untouched keys keep defaults")
	assert.Equal(t, 10*time.Second, rc.InviteMin)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "J", cfg.Sim.Keys.Red)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "timing:\n  input_timeout: 4s\n")
	t.Setenv("SHIMON_TIMING_INPUT_TIMEOUT", "5s")
	t.Setenv("SHIMON_GAME_CONFUSER", "false")
	t.Setenv("SHIMON_METRICS_ADDR", ":9091")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Timing.InputTimeout)
	assert.False(t, cfg.Game.Confuser)
	assert.Equal(t, ":9091", cfg.Metrics.Addr)
}

func TestInvalidSettingsRejected(t *testing.T) {
	cases := map[string]string{
		"unknown toggle":    "game:\n  confuser_toggle: purple\n",
		"inverted invite":   "invite:\n  min: 50s\n  max: 20s\n",
		"speed step":        "timing:\n  speed_step: 1.5\n",
		"speed every":       "timing:\n  speed_every: 0\n",
		"empty sequence":    "game:\n  max_len: 0\n",
		"malformed content": "timing: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
