package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
)

func TestDefaultGameConfigIsValid(t *testing.T) {
	cfg := DefaultGameConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.NBackLevel)
	assert.Equal(t, Timer(10), cfg.BaseTimer)
	assert.False(t, cfg.IsPracticeMode)
}

func TestGameConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GameConfig)
		ok     bool
	}{
		{"n-back 9", func(c *GameConfig) { c.NBackLevel = 9 }, true},
		{"n-back 0", func(c *GameConfig) { c.NBackLevel = 0 }, false},
		{"n-back 10", func(c *GameConfig) { c.NBackLevel = 10 }, false},
		{"timer 3", func(c *GameConfig) { c.BaseTimer = 3 }, true},
		{"timer 30", func(c *GameConfig) { c.BaseTimer = 30 }, true},
		{"timer 2", func(c *GameConfig) { c.BaseTimer = 2 }, false},
		{"timer 31", func(c *GameConfig) { c.BaseTimer = 31 }, false},
		{"timer infinite", func(c *GameConfig) { c.BaseTimer = Infinite }, true},
		{"family tag", func(c *GameConfig) { c.PracticeFamily = "DEICTIC" }, true},
		{"family unknown", func(c *GameConfig) { c.PracticeFamily = "SOCIAL" }, false},
		{"family empty", func(c *GameConfig) { c.PracticeFamily = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestPracticeLock(t *testing.T) {
	cfg := DefaultGameConfig()
	_, ok := cfg.PracticeLock()
	assert.False(t, ok)

	cfg.IsPracticeMode = true
	_, ok = cfg.PracticeLock()
	assert.False(t, ok, "MIXED does not lock")

	cfg.PracticeFamily = "ANALOGY"
	f, ok := cfg.PracticeLock()
	assert.True(t, ok)
	assert.Equal(t, puzzle.Analogy, f)
}

func TestTimerJSON(t *testing.T) {
	data, err := json.Marshal(GameConfig{NBackLevel: 2, BaseTimer: Infinite, PracticeFamily: Mixed})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"base_timer":"infinite"`)

	var back GameConfig
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.BaseTimer.IsInfinite())

	require.NoError(t, json.Unmarshal([]byte(`{"base_timer":12}`), &back))
	assert.Equal(t, Timer(12), back.BaseTimer)

	assert.Error(t, json.Unmarshal([]byte(`{"base_timer":"soon"}`), &back))
}

func TestTimerYAML(t *testing.T) {
	var cfg GameConfig
	require.NoError(t, yaml.Unmarshal([]byte("n_back: 3\nbase_timer: infinite\n"), &cfg))
	assert.Equal(t, 3, cfg.NBackLevel)
	assert.Equal(t, Infinite, cfg.BaseTimer)

	out, err := yaml.Marshal(GameConfig{BaseTimer: 15})
	require.NoError(t, err)
	assert.Contains(t, string(out), "base_timer: 15")
}

func TestParseTimer(t *testing.T) {
	v, err := ParseTimer("INFINITE")
	require.NoError(t, err)
	assert.Equal(t, Infinite, v)
	assert.Equal(t, "infinite", v.String())

	v, err = ParseTimer(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, 7, v.Seconds())

	_, err = ParseTimer("x")
	assert.Error(t, err)
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	t.Setenv("CIPHER_DB", "")
	t.Setenv("CIPHER_LOG_LEVEL", "")
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAppConfig(), cfg)
}

func TestLoadFromFileAppliesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trainer.yaml")
	cfg := DefaultAppConfig()
	cfg.Session.MatchProbability = 0.5
	cfg.Log.Format = "json"
	require.NoError(t, cfg.SaveToFile(path))

	t.Setenv("CIPHER_DB", filepath.Join(dir, "x.db"))
	t.Setenv("CIPHER_LOG_LEVEL", "DEBUG")
	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Session.MatchProbability)
	assert.Equal(t, "json", got.Log.Format)
	assert.Equal(t, filepath.Join(dir, "x.db"), got.Storage.Path)
	assert.Equal(t, "debug", got.Log.Level)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	t.Setenv("CIPHER_DB", "")
	t.Setenv("CIPHER_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session:\n  match_probability: 2\n"), 0o644))
	_, err := LoadFromFile(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"msg":"shown"`)
}
