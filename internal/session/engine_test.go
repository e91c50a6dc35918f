package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/logging"
	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
	"github.com/danielpatrickdp/cipher-nback/internal/rating"
	"github.com/danielpatrickdp/cipher-nback/internal/state"
)

// #region fixtures

type memStore struct {
	rating      int
	hasRating   bool
	cfg         config.GameConfig
	hasCfg      bool
	loadErr     error
	ratingSaves int
}

func (m *memStore) LoadRating() (int, error) {
	if m.loadErr != nil {
		return 0, m.loadErr
	}
	if !m.hasRating {
		return 0, state.ErrNotFound
	}
	return m.rating, nil
}

func (m *memStore) SaveRating(r int) error {
	m.rating, m.hasRating = r, true
	m.ratingSaves++
	return nil
}

func (m *memStore) LoadConfig() (config.GameConfig, error) {
	if m.loadErr != nil {
		return config.GameConfig{}, m.loadErr
	}
	if !m.hasCfg {
		return config.GameConfig{}, state.ErrNotFound
	}
	return m.cfg, nil
}

func (m *memStore) SaveConfig(cfg config.GameConfig) error {
	m.cfg, m.hasCfg = cfg, true
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// newEngine builds an engine locked to one family with an infinite timer.
func newEngine(t *testing.T, store *memStore, mutate func(*config.GameConfig)) *Engine {
	t.Helper()
	cfg := config.GameConfig{
		NBackLevel:     1,
		BaseTimer:      config.Infinite,
		IsPracticeMode: false,
		PracticeFamily: config.Mixed,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	store.cfg, store.hasCfg = cfg, true
	return New(Deps{Store: store, Source: random.New(42), Logger: quietLogger()})
}

// lockTo switches on practice mode pinned to family.
func lockTo(f puzzle.Family) func(*config.GameConfig) {
	return func(c *config.GameConfig) {
		c.IsPracticeMode = true
		c.PracticeFamily = string(f)
	}
}

// answerTurn answers the pending turn correctly or not.
func answerTurn(t *testing.T, e *Engine, correct bool) {
	t.Helper()
	want, ok := e.Expected()
	if !ok {
		_, err := e.SubmitAnswer(false, false)
		require.NoError(t, err)
		return
	}
	if !correct {
		want = !want
	}
	_, err := e.SubmitAnswer(want, false)
	require.NoError(t, err)
}

// #endregion fixtures

func TestPhaseFor(t *testing.T) {
	assert.Equal(t, PhaseWarmup, PhaseFor(0, 1))
	assert.Equal(t, PhasePlaying, PhaseFor(1, 1))
	assert.Equal(t, PhaseWarmup, PhaseFor(2, 3))
	assert.Equal(t, PhasePlaying, PhaseFor(5, 3))
}

func TestNewDefaultsWithoutPersistedState(t *testing.T) {
	e := New(Deps{Store: &memStore{}, Source: random.New(1), Logger: quietLogger()})
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, rating.Default, e.Rating())
	assert.Equal(t, rating.Default, e.PersistedRating())
	assert.Equal(t, config.DefaultGameConfig(), e.Config())
}

func TestNewCorruptStateFallsBackAndWarns(t *testing.T) {
	var buf bytes.Buffer
	store := &memStore{loadErr: state.ErrCorrupt}
	e := New(Deps{Store: store, Source: random.New(1), Logger: slog.New(slog.NewTextHandler(&buf, nil))})

	assert.Equal(t, rating.Default, e.Rating())
	assert.Equal(t, config.DefaultGameConfig(), e.Config())
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestNewLoadsPersistedState(t *testing.T) {
	store := &memStore{rating: 1320, hasRating: true}
	e := newEngine(t, store, func(c *config.GameConfig) { c.NBackLevel = 2 })
	assert.Equal(t, 1320, e.Rating())
	assert.Equal(t, 2, e.Config().NBackLevel)
}

func TestStartAndPhaseGuards(t *testing.T) {
	e := newEngine(t, &memStore{}, nil)

	_, err := e.NextTurn()
	require.ErrorIs(t, err, ErrWrongPhase)
	_, err = e.SubmitAnswer(true, false)
	require.ErrorIs(t, err, ErrNoActiveTurn)

	turn, err := e.Start()
	require.NoError(t, err)
	assert.Equal(t, 1, turn.Number)
	assert.True(t, turn.BlockSwitch)
	assert.Equal(t, PhaseWarmup, turn.Phase)
	assert.NotEmpty(t, e.SessionID())

	_, err = e.Start()
	require.ErrorIs(t, err, ErrWrongPhase)
	_, err = e.NextTurn()
	require.ErrorIs(t, err, ErrWrongPhase, "next turn needs feedback first")
}

func TestSubmitAnswerHonouredOnce(t *testing.T) {
	e := newEngine(t, &memStore{}, nil)
	_, err := e.Start()
	require.NoError(t, err)

	entry, err := e.SubmitAnswer(true, false)
	require.NoError(t, err)
	assert.True(t, entry.Warmup)
	assert.Equal(t, PhaseFeedback, e.Phase())

	_, err = e.SubmitAnswer(false, false)
	require.ErrorIs(t, err, ErrNoActiveTurn)
	assert.Len(t, e.Log(), 1)
}

func TestWarmupIsNotJudged(t *testing.T) {
	store := &memStore{}
	e := newEngine(t, store, func(c *config.GameConfig) { c.NBackLevel = 3 })
	_, err := e.Start()
	require.NoError(t, err)

	for i := range 3 {
		turn, ok := e.Current()
		require.True(t, ok)
		require.Equal(t, PhaseWarmup, turn.Phase, "turn %d", i+1)
		_, err := e.SubmitAnswer(true, false)
		require.NoError(t, err)
		_, err = e.NextTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, rating.Default, e.Rating())
	assert.Zero(t, e.Failures())
	assert.Zero(t, store.ratingSaves)
}

func TestJudgedTurnsMoveAndPersistRating(t *testing.T) {
	store := &memStore{}
	e := newEngine(t, store, nil)
	_, err := e.Start()
	require.NoError(t, err)

	judged := 0
	for judged < 4 {
		turn, _ := e.Current()
		answerTurn(t, e, true)
		if turn.Phase == PhasePlaying {
			judged++
			latest := e.Log()[0]
			require.True(t, latest.Correct)
			require.NotNil(t, latest.Target)
		}
		_, err := e.NextTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, rating.Default+20, e.Rating())
	assert.Equal(t, rating.Default+20, e.PersistedRating())
	assert.Equal(t, rating.Default+20, store.rating)
}

func TestTimeoutIsIncorrect(t *testing.T) {
	e := newEngine(t, &memStore{}, lockTo(puzzle.Comparison))
	_, err := e.Start()
	require.NoError(t, err)
	answerTurn(t, e, true)
	_, err = e.NextTurn()
	require.NoError(t, err)

	entry, err := e.SubmitAnswer(true, true)
	require.NoError(t, err)
	assert.True(t, entry.TimedOut)
	assert.False(t, entry.Correct)
	assert.Nil(t, entry.Answer)
	assert.Equal(t, 1, e.Failures())
}

func TestMatchProbabilityExtremes(t *testing.T) {
	for _, p := range []float64{0, 1} {
		store := &memStore{}
		cfg := config.GameConfig{NBackLevel: 2, BaseTimer: config.Infinite, IsPracticeMode: true, PracticeFamily: "OPPOSITION"}
		store.cfg, store.hasCfg = cfg, true
		opts := DefaultOptions()
		opts.MatchProbability = p
		e := New(Deps{Store: store, Source: random.New(7), Logger: quietLogger(), Options: opts})

		_, err := e.Start()
		require.NoError(t, err)
		for range 30 {
			if want, ok := e.Expected(); ok {
				assert.Equal(t, p == 1, want, "p=%v", p)
			}
			answerTurn(t, e, true)
			_, err := e.NextTurn()
			require.NoError(t, err)
		}
	}
}

func TestHistoryCappedAndTruncatedOnSwitch(t *testing.T) {
	e := newEngine(t, &memStore{}, func(c *config.GameConfig) { c.NBackLevel = 2 })
	turn, err := e.Start()
	require.NoError(t, err)

	switches := 0
	for range 120 {
		if turn.BlockSwitch {
			switches++
			assert.Equal(t, PhaseWarmup, turn.Phase)
			assert.Len(t, e.History(), 1)
		}
		assert.LessOrEqual(t, len(e.History()), 3)
		for _, h := range e.History() {
			assert.Equal(t, turn.Stimulus.Family, h.Stimulus.Family, "history never mixes families")
		}
		answerTurn(t, e, true)
		turn, err = e.NextTurn()
		require.NoError(t, err)
	}
	assert.Greater(t, switches, 3)
}

func TestRepairModeCycle(t *testing.T) {
	store := &memStore{}
	e := newEngine(t, store, nil)
	turn, err := e.Start()
	require.NoError(t, err)

	// three judged misses enter repair on the failing family
	misses := 0
	var failing puzzle.Family
	for misses < 3 {
		if turn.Phase == PhasePlaying {
			misses++
			failing = turn.Stimulus.Family
			answerTurn(t, e, false)
		} else {
			answerTurn(t, e, true)
		}
		if misses < 3 {
			turn, err = e.NextTurn()
			require.NoError(t, err)
		}
	}
	require.True(t, e.Repair().Active)
	assert.Equal(t, failing, e.Repair().LockedFamily)
	frozen := e.Rating()
	assert.Equal(t, rating.Default-15, frozen)
	sched := e.Schedule()

	// repair turns: single claim, rating frozen, scheduler untouched
	for i := range 5 {
		turn, err = e.NextTurn()
		require.NoError(t, err)
		require.True(t, turn.Repair)
		assert.Equal(t, PhasePlaying, turn.Phase)
		assert.Equal(t, failing, turn.Stimulus.Family)
		assert.True(t, puzzle.InVocabulary(failing, turn.Stimulus.Tier, turn.Claim))

		// the second turn is a miss, which resets the streak
		entry := mustAnswer(t, e, i != 1)
		assert.True(t, entry.Repair)
		assert.Equal(t, turn.Claim, entry.RepairClaim)
		assert.Equal(t, frozen, e.Rating())
		if i == 1 {
			assert.Zero(t, e.Repair().ConsecutiveSuccesses)
		}
	}

	assert.False(t, e.Repair().Active)
	assert.Zero(t, e.Failures())
	assert.Empty(t, e.History())
	assert.Equal(t, sched, e.Schedule())

	turn, err = e.NextTurn()
	require.NoError(t, err)
	assert.False(t, turn.Repair)
	assert.Equal(t, PhaseWarmup, turn.Phase)
}

func mustAnswer(t *testing.T, e *Engine, correct bool) logging.LogEntry {
	t.Helper()
	want, ok := e.Expected()
	require.True(t, ok)
	if !correct {
		want = !want
	}
	got, err := e.SubmitAnswer(want, false)
	require.NoError(t, err)
	return got
}

func TestPracticeModeFreezesPersistedRating(t *testing.T) {
	store := &memStore{rating: 1100, hasRating: true}
	e := newEngine(t, store, lockTo(puzzle.Analogy))
	_, err := e.Start()
	require.NoError(t, err)

	for range 6 {
		turn, _ := e.Current()
		assert.Equal(t, puzzle.Analogy, turn.Stimulus.Family)
		answerTurn(t, e, true)
		_, err := e.NextTurn()
		require.NoError(t, err)
	}
	assert.Equal(t, 1125, e.Rating())
	assert.Equal(t, 1100, e.PersistedRating())
	assert.Zero(t, store.ratingSaves)

	e.Reset()
	assert.Equal(t, 1100, e.Rating())
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Empty(t, e.Log())
}

func TestSaveSettings(t *testing.T) {
	store := &memStore{}
	e := newEngine(t, store, nil)
	_, err := e.Start()
	require.NoError(t, err)

	bad := e.Config()
	bad.NBackLevel = 0
	require.ErrorIs(t, e.SaveSettings(bad), config.ErrInvalidConfig)
	assert.NotEqual(t, PhaseIdle, e.Phase(), "rejected settings change nothing")

	good := e.Config()
	good.NBackLevel = 4
	require.NoError(t, e.SaveSettings(good))
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, 4, store.cfg.NBackLevel)
	assert.Empty(t, e.Log())
	assert.Empty(t, e.History())
}

func TestCountdownLifecycle(t *testing.T) {
	e := newEngine(t, &memStore{}, func(c *config.GameConfig) { c.BaseTimer = 10 })
	turn, err := e.Start()
	require.NoError(t, err)
	require.Greater(t, turn.Budget, time.Duration(0))
	require.NotNil(t, e.Countdown())
	cd := e.Countdown()

	_, err = e.SubmitAnswer(true, false)
	require.NoError(t, err)
	assert.Nil(t, e.Countdown(), "answer stops the countdown")
	assert.Nil(t, cd.Expired())
	assert.False(t, cd.TimedOut())

	infinite := newEngine(t, &memStore{}, nil)
	turn, err = infinite.Start()
	require.NoError(t, err)
	assert.Zero(t, turn.Budget)
	assert.Nil(t, infinite.Countdown())
}

func TestCountdownExpires(t *testing.T) {
	cd := StartCountdown(context.Background(), 20*time.Millisecond)
	select {
	case <-cd.Expired():
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not expire")
	}
	assert.True(t, cd.TimedOut())
	assert.Zero(t, cd.Remaining(time.Now()))
	cd.Stop()

	never := StartCountdown(context.Background(), 0)
	assert.Nil(t, never.Expired())
	never.Stop()

	var none *Countdown
	assert.Nil(t, none.Expired())
	none.Stop()
}

func TestResetClearsEverything(t *testing.T) {
	e := newEngine(t, &memStore{}, nil)
	_, err := e.Start()
	require.NoError(t, err)
	answerTurn(t, e, true)

	e.Reset()
	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Empty(t, e.Log())
	assert.Empty(t, e.History())
	assert.Zero(t, e.Schedule().Remaining)
	_, ok := e.Current()
	assert.False(t, ok)

	turn, err := e.Start()
	require.NoError(t, err)
	assert.Equal(t, 1, turn.Number, "turn numbering restarts")
}

func TestStoreLoadErrorIsNotReturned(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk gone")}
	e := New(Deps{Store: store, Logger: quietLogger()})
	assert.Equal(t, rating.Default, e.Rating())
}
