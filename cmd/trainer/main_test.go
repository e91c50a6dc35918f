package main

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/replay"
	"github.com/danielpatrickdp/cipher-nback/internal/session"
)

func TestApplySettingFlags(t *testing.T) {
	cmd := &cobra.Command{}
	bindSettingFlags(cmd)
	require.NoError(t, cmd.Flags().Parse([]string{"--n-back", "3", "--timer", "infinite", "--family", "spatial"}))

	cfg, err := applySettingFlags(cmd, config.DefaultGameConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NBackLevel)
	assert.True(t, cfg.BaseTimer.IsInfinite())
	assert.Equal(t, "SPATIAL", cfg.PracticeFamily)
	assert.False(t, cfg.IsPracticeMode, "unset flags keep saved values")
}

func TestApplySettingFlagsRejectsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--n-back", "12"},
		{"--timer", "2"},
		{"--timer", "soon"},
		{"--family", "astrology"},
	} {
		cmd := &cobra.Command{}
		bindSettingFlags(cmd)
		require.NoError(t, cmd.Flags().Parse(args))
		_, err := applySettingFlags(cmd, config.DefaultGameConfig())
		assert.Error(t, err, "%v", args)
	}
}

func TestPrintComparison(t *testing.T) {
	results := []replay.Result{
		{Turn: 1, Family: "CAUSAL", Action: replay.ActionWarmup, Rating: 1000},
		{Turn: 2, Family: "CAUSAL", Action: replay.ActionCorrect, Rating: 1005},
	}
	var buf bytes.Buffer
	diverge := printComparison(&buf, results, []replay.FixtureExpectedResult{
		{Turn: 1, Action: replay.ActionWarmup, Rating: 1000},
		{Turn: 2, Action: replay.ActionIncorrect, Rating: 995},
	})
	assert.Equal(t, 1, diverge)
	assert.Contains(t, buf.String(), "DIFF")
	assert.Contains(t, buf.String(), "1 match, 1 diverge")
}

func TestPrintComparisonMatchesByTurn(t *testing.T) {
	results := []replay.Result{
		{Turn: 1, Family: "CAUSAL", Action: replay.ActionWarmup, Rating: 1000},
		{Turn: 2, Family: "CAUSAL", Action: replay.ActionCorrect, Rating: 1005},
		{Turn: 3, Family: "CAUSAL", Action: replay.ActionCorrect, Rating: 1010},
	}
	var buf bytes.Buffer
	diverge := printComparison(&buf, results, []replay.FixtureExpectedResult{
		{Turn: 3, Action: replay.ActionCorrect, Rating: 1010},
		{Turn: 2, Action: replay.ActionCorrect, Rating: 1005},
	})
	assert.Zero(t, diverge, buf.String())
	assert.Contains(t, buf.String(), "2 compared, 2 match, 0 diverge")

	buf.Reset()
	diverge = printComparison(&buf, results, []replay.FixtureExpectedResult{
		{Turn: 2, Action: replay.ActionCorrect, Rating: 1005},
		{Turn: 9, Action: replay.ActionCorrect, Rating: 1015},
	})
	assert.Equal(t, 1, diverge)
	assert.Contains(t, buf.String(), "not replayed")
}

func TestReadLinesStopsWhenDone(t *testing.T) {
	done := make(chan struct{})
	lines := readLines(endlessInput{}, done)
	assert.Equal(t, "m", <-lines)
	close(done)

	drained := make(chan struct{})
	go func() {
		for range lines {
		}
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(2 * time.Second):
		t.Fatal("reader goroutine kept running after done")
	}
}

// endlessInput answers "M" forever.
type endlessInput struct{}

func (endlessInput) Read(p []byte) (int, error) {
	n := 0
	for n+1 < len(p) {
		p[n], p[n+1] = 'M', '\n'
		n += 2
	}
	return n, nil
}

func TestAwaitAnswer(t *testing.T) {
	lines := make(chan string, 3)
	lines <- "x"
	lines <- "m"
	var out bytes.Buffer
	answer, timedOut, quit := awaitAnswer(&out, lines, nil, false)
	assert.True(t, answer)
	assert.False(t, timedOut)
	assert.False(t, quit)
	assert.Equal(t, 2, strings.Count(out.String(), "[m/n/q]"), "invalid input prompts again")

	lines <- "y"
	answer, _, _ = awaitAnswer(&out, lines, nil, true)
	assert.True(t, answer, "repair confirms with y")

	close(lines)
	_, _, quit = awaitAnswer(&out, lines, nil, false)
	assert.True(t, quit, "EOF quits")
}

func TestAwaitAnswerTimesOut(t *testing.T) {
	cd := session.StartCountdown(t.Context(), 10*time.Millisecond)
	defer cd.Stop()
	var out bytes.Buffer
	_, timedOut, quit := awaitAnswer(&out, make(chan string), cd, false)
	assert.True(t, timedOut)
	assert.False(t, quit)
}

func TestReplayCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"--config", filepath.Join(t.TempDir(), "none.yaml"),
		"replay", "--fixture", filepath.Join("..", "..", "internal", "replay", "testdata", "practice_streak.json"),
	})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "6 match, 0 diverge")
}

func TestSettingsThenInspect(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "trainer.db")
	cfgPath := filepath.Join(dir, "none.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "settings", "--n-back", "4", "--practice"})
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "inspect", "--json"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"n_back": 4`)
	assert.Contains(t, out.String(), `"practice_mode": true`)
	assert.Contains(t, out.String(), `"rating": 1000`)
}

func TestSettingsReplacesCorruptConfig(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "trainer.db")
	cfgPath := filepath.Join(dir, "none.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "settings", "--n-back", "2"})
	require.NoError(t, rootCmd.Execute())

	raw, err := sql.Open("sqlite", db)
	require.NoError(t, err)
	_, err = raw.Exec(`UPDATE persisted_config SET config_json = '{"n_back": 42}' WHERE id = 1`)
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "inspect", "--json"})
	require.NoError(t, rootCmd.Execute(), "corrupt config falls back to defaults")
	assert.Contains(t, out.String(), `"corrupt": [`)
	assert.Contains(t, out.String(), `"n_back": 1`, "default n-back")

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "settings", "--n-back", "5"})
	require.NoError(t, rootCmd.Execute())

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgPath, "--db", db, "inspect", "--json"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"n_back": 5`)
	assert.NotContains(t, out.String(), `"corrupt"`)
}
