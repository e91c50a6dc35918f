package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

func TestFailureStreakEntersAtThree(t *testing.T) {
	cfg := DefaultConfig()
	f := 0
	for i, correct := range []bool{false, false, true, false, false} {
		f = RecordFailure(f, correct)
		assert.False(t, ShouldEnter(f, cfg), "turn %d", i)
	}
	f = RecordFailure(f, false)
	assert.Equal(t, 3, f)
	assert.True(t, ShouldEnter(f, cfg))

	st := Enter(puzzle.Spatial)
	assert.True(t, st.Active)
	assert.Equal(t, puzzle.Spatial, st.LockedFamily)
	assert.Zero(t, st.ConsecutiveSuccesses)
}

func TestClaimDistribution(t *testing.T) {
	src := random.New(1)
	vocab := puzzle.Vocabulary(puzzle.Opposition, 1)
	cfg := DefaultConfig()

	trues := 0
	for range 1000 {
		shown, isTrue := Claim(src, vocab, puzzle.Same, cfg)
		require.Contains(t, vocab, shown)
		if isTrue {
			trues++
			assert.Equal(t, puzzle.Same, shown)
		} else {
			assert.NotEqual(t, puzzle.Same, shown)
		}
	}
	assert.InDelta(t, 500, trues, 80)
}

func TestScore(t *testing.T) {
	assert.True(t, Score(true, true, false))
	assert.True(t, Score(false, false, false))
	assert.False(t, Score(true, false, false))
	assert.False(t, Score(true, true, true), "timeout is never correct")
}

func TestRecordSuccessExitsAfterThree(t *testing.T) {
	cfg := DefaultConfig()
	st := Enter(puzzle.Causal)

	var tr Transition
	st, tr = RecordSuccess(st, true, cfg)
	st, tr = RecordSuccess(st, true, cfg)
	require.Equal(t, TransitionNone, tr)
	require.Equal(t, 2, st.ConsecutiveSuccesses)

	// a miss resets the streak but keeps the lock
	st, tr = RecordSuccess(st, false, cfg)
	assert.Equal(t, TransitionNone, tr)
	assert.True(t, st.Active)
	assert.Zero(t, st.ConsecutiveSuccesses)

	for range 2 {
		st, tr = RecordSuccess(st, true, cfg)
		require.Equal(t, TransitionNone, tr)
	}
	st, tr = RecordSuccess(st, true, cfg)
	assert.Equal(t, TransitionExit, tr)
	assert.Equal(t, State{}, st)
}

func TestRecordSuccessInactiveIsNoop(t *testing.T) {
	st, tr := RecordSuccess(State{}, true, DefaultConfig())
	assert.Equal(t, State{}, st)
	assert.Equal(t, TransitionNone, tr)
}
