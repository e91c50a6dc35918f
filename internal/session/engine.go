package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/judge"
	"github.com/danielpatrickdp/cipher-nback/internal/logging"
	"github.com/danielpatrickdp/cipher-nback/internal/metrics"
	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
	"github.com/danielpatrickdp/cipher-nback/internal/random"
	"github.com/danielpatrickdp/cipher-nback/internal/rating"
	"github.com/danielpatrickdp/cipher-nback/internal/repair"
	"github.com/danielpatrickdp/cipher-nback/internal/schedule"
	"github.com/danielpatrickdp/cipher-nback/internal/state"
)

// #region engine

// Engine is the session state machine. It owns all mutable session state and is
// not safe for concurrent use; callers serialize every call.
type Engine struct {
	store Store
	src   random.Source
	log   *slog.Logger
	clock func() time.Time
	opts  Options

	sessionID string
	phase     Phase
	cfg       config.GameConfig

	active    int // rating used for generation
	persisted int

	sched    schedule.State
	history  []judge.HistoryItem
	failures int
	repair   repair.State
	turns    int
	turnLog  logging.TurnLog

	current   *Turn
	pending   bool
	result    string // hidden result of the pending turn
	claimTrue bool   // repair: whether the displayed claim is the true result
	countdown *Countdown
}

// New builds an engine from persisted state. Missing or corrupt values fall back
// to defaults and are logged, never returned.
func New(d Deps) *Engine {
	e := &Engine{
		store: d.Store,
		src:   d.Source,
		log:   d.Logger,
		clock: d.Clock,
		opts:  d.Options,
		phase: PhaseIdle,
	}
	if e.src == nil {
		e.src = random.New(0)
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	if e.opts == (Options{}) {
		e.opts = DefaultOptions()
	}

	e.persisted = rating.Default
	e.cfg = config.DefaultGameConfig()
	if e.store != nil {
		if r, err := e.store.LoadRating(); err == nil {
			e.persisted = r
		} else {
			e.logLoadError("rating", err)
		}
		if c, err := e.store.LoadConfig(); err == nil {
			e.cfg = c
		} else {
			e.logLoadError("config", err)
		}
	}
	e.active = e.persisted
	return e
}

func (e *Engine) logLoadError(what string, err error) {
	if errors.Is(err, state.ErrNotFound) {
		e.log.Debug("no persisted value, using default", "value", what)
		return
	}
	e.log.Warn("persisted value unreadable, using default", "value", what, "err", err)
}

// #endregion engine

// #region lifecycle

// Start begins a session from IDLE and generates the first turn.
func (e *Engine) Start() (Turn, error) {
	if e.phase != PhaseIdle {
		return Turn{}, fmt.Errorf("start from %s: %w", e.phase, ErrWrongPhase)
	}
	e.sessionID = uuid.New().String()
	e.log.Info("session started",
		"session", e.sessionID,
		"n_back", e.cfg.NBackLevel,
		"timer", e.cfg.BaseTimer.String(),
		"practice", e.cfg.IsPracticeMode,
		"rating", e.active,
	)
	return e.nextTurn()
}

// NextTurn generates the next stimulus. Only allowed from FEEDBACK.
func (e *Engine) NextTurn() (Turn, error) {
	if e.phase != PhaseFeedback {
		return Turn{}, fmt.Errorf("next turn from %s: %w", e.phase, ErrWrongPhase)
	}
	return e.nextTurn()
}

// Reset returns to IDLE and drops the log, history, counters, repair state and bag.
// The active rating is restored from the persisted one.
func (e *Engine) Reset() {
	e.stopCountdown()
	e.phase = PhaseIdle
	e.sessionID = ""
	e.sched = schedule.State{}
	e.history = nil
	e.failures = 0
	e.repair = repair.State{}
	e.turns = 0
	e.turnLog.Clear()
	e.current = nil
	e.pending = false
	e.result = ""
	e.active = e.persisted
}

// SaveSettings validates and persists cfg, then resets to IDLE.
func (e *Engine) SaveSettings(cfg config.GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if e.store != nil {
		if err := e.store.SaveConfig(cfg); err != nil {
			return fmt.Errorf("save settings: %w", err)
		}
	}
	e.cfg = cfg
	e.Reset()
	e.log.Info("settings saved", "n_back", cfg.NBackLevel, "timer", cfg.BaseTimer.String(),
		"practice", cfg.IsPracticeMode, "family", cfg.PracticeFamily)
	return nil
}

// #endregion lifecycle

// #region generate

func (e *Engine) nextTurn() (Turn, error) {
	e.stopCountdown()
	if e.repair.Active {
		return e.repairTurn()
	}

	n := e.cfg.NBackLevel
	family, switched := e.chooseFamily()
	if switched {
		e.history = e.history[:0]
		metrics.RecordBlockSwitch(string(family))
		e.log.Info("block switch", "family", family, "run", e.sched.Remaining+1)
	}

	prev, force := "", false
	if len(e.history) >= n {
		prev = e.history[len(e.history)-n].Result
		force = random.Bool(e.src, e.opts.MatchProbability)
	}

	tier := rating.Tier(e.active)
	out, err := puzzle.Generate(e.src, family, prev, force, tier)
	if err != nil {
		return Turn{}, fmt.Errorf("next turn: %w", err)
	}
	if out.UsedFallback {
		metrics.RecordSearchFallback(string(family))
		e.log.Debug("constraint search fell back", "family", family, "result", out.Result)
	}

	e.history = append(e.history, judge.HistoryItem{Result: out.Result, Stimulus: out.Stimulus})
	if over := len(e.history) - (n + 1); over > 0 {
		e.history = slices.Delete(e.history, 0, over)
	}

	return e.present(Turn{
		Stimulus:    out.Stimulus,
		Phase:       PhaseFor(len(e.history)-1, n),
		BlockSwitch: switched,
	}, out.Result), nil
}

// chooseFamily applies the practice lock or the block scheduler.
func (e *Engine) chooseFamily() (puzzle.Family, bool) {
	if f, ok := e.cfg.PracticeLock(); ok {
		// the first turn under a lock opens its only block
		return f, len(e.history) == 0
	}
	next, switched := schedule.Next(e.src, e.sched, e.cfg.NBackLevel)
	e.sched = next
	return next.Active, switched
}

// repairTurn generates a single-step claim turn for the locked family.
func (e *Engine) repairTurn() (Turn, error) {
	family := e.repair.LockedFamily
	out, err := puzzle.Generate(e.src, family, "", false, rating.Tier(e.active))
	if err != nil {
		return Turn{}, fmt.Errorf("repair turn: %w", err)
	}
	vocab := puzzle.Vocabulary(family, out.Stimulus.Tier)
	shown, isTrue := repair.Claim(e.src, vocab, out.Result, e.opts.Repair)
	e.repair.TargetResult = out.Result
	e.claimTrue = isTrue

	return e.present(Turn{
		Stimulus: out.Stimulus,
		Phase:    PhasePlaying,
		Repair:   true,
		Claim:    shown,
	}, out.Result), nil
}

// present stamps and publishes the pending turn and starts its countdown.
func (e *Engine) present(t Turn, result string) Turn {
	e.turns++
	t.Number = e.turns
	t.StartedAt = e.clock()
	t.Budget = puzzle.TimeBudget(puzzle.Complexity(t.Stimulus), e.cfg.BaseTimer.Seconds(), e.active)
	if t.Budget > 0 {
		e.countdown = StartCountdown(context.Background(), t.Budget)
	}

	e.current = &t
	e.pending = true
	e.result = result
	e.phase = t.Phase
	e.log.Debug("turn", "n", t.Number, "family", t.Stimulus.Family, "tier", t.Stimulus.Tier,
		"phase", t.Phase, "negated", t.Stimulus.Negated, "budget", t.Budget)
	return t
}

// #endregion generate

// #region answer

// SubmitAnswer scores the pending turn. answer is the player's "match" (or, in
// repair, "claim is true"); timedOut marks an expired countdown. Only the first
// call per turn is honoured; later or premature calls return ErrNoActiveTurn and
// change nothing.
func (e *Engine) SubmitAnswer(answer, timedOut bool) (logging.LogEntry, error) {
	if !e.pending || (e.phase != PhaseWarmup && e.phase != PhasePlaying) {
		return logging.LogEntry{}, ErrNoActiveTurn
	}
	e.stopCountdown()
	e.pending = false

	t := *e.current
	now := e.clock()
	entry := logging.LogEntry{
		SessionID:    e.sessionID,
		Turn:         t.Number,
		Timestamp:    now,
		Current:      judge.HistoryItem{Result: e.result, Stimulus: t.Stimulus},
		ReactionTime: now.Sub(t.StartedAt),
		TimedOut:     timedOut,
	}
	if !timedOut {
		entry.Answer = &answer
		metrics.ObserveReaction(entry.ReactionTime)
	}

	var outcome string
	switch {
	case t.Repair:
		outcome = e.scoreRepair(&entry, answer, timedOut)
	case t.Phase == PhaseWarmup:
		entry.Warmup = true
		outcome = metrics.OutcomeWarmup
	default:
		var err error
		if outcome, err = e.scoreJudged(&entry, t, answer, timedOut); err != nil {
			return logging.LogEntry{}, err
		}
	}
	if timedOut && !t.Repair && t.Phase != PhaseWarmup {
		outcome = metrics.OutcomeTimeout
	}
	metrics.RecordTurn(string(t.Stimulus.Family), outcome)

	entry.Rating = e.active
	entry = e.turnLog.Append(entry)
	e.phase = PhaseFeedback
	return entry, nil
}

// scoreJudged runs the N-back judge, the rating update and the failure streak.
func (e *Engine) scoreJudged(entry *logging.LogEntry, t Turn, answer, timedOut bool) (string, error) {
	v, err := judge.Judge(e.history, e.cfg.NBackLevel, answer, timedOut)
	if err != nil {
		return "", fmt.Errorf("score turn %d: %w", t.Number, err)
	}
	target := v.Target
	entry.Target = &target
	entry.IsMatch = v.IsMatch
	entry.Correct = v.Correct

	res := rating.Update(e.active, rating.UpdateContext{
		TurnID:  fmt.Sprintf("%s/%d", e.sessionID, t.Number),
		Correct: v.Correct,
	}, e.opts.Rating)
	e.active = res.New
	if !e.cfg.IsPracticeMode && res.New != e.persisted {
		e.persisted = res.New
		if e.store != nil {
			if err := e.store.SaveRating(res.New); err != nil {
				e.log.Warn("persist rating failed", "rating", res.New, "err", err)
			}
		}
	}

	e.failures = repair.RecordFailure(e.failures, v.Correct)
	if repair.ShouldEnter(e.failures, e.opts.Repair) {
		e.repair = repair.Enter(t.Stimulus.Family)
		metrics.RecordRepairTransition(string(repair.TransitionEnter))
		e.log.Info("repair mode entered", "family", t.Stimulus.Family, "failures", e.failures)
	}

	if v.Correct {
		return metrics.OutcomeCorrect, nil
	}
	return metrics.OutcomeIncorrect, nil
}

// scoreRepair judges a single-step claim and advances the repair streak.
func (e *Engine) scoreRepair(entry *logging.LogEntry, answer, timedOut bool) string {
	correct := repair.Score(answer, e.claimTrue, timedOut)
	entry.Repair = true
	entry.RepairClaim = e.current.Claim
	entry.IsMatch = e.claimTrue
	entry.Correct = correct

	// rating is frozen during repair
	res := rating.Update(e.active, rating.UpdateContext{Correct: correct, Repair: true}, e.opts.Rating)
	e.active = res.New

	next, tr := repair.RecordSuccess(e.repair, correct, e.opts.Repair)
	e.repair = next
	if tr == repair.TransitionExit {
		e.failures = 0
		e.history = nil
		metrics.RecordRepairTransition(string(repair.TransitionExit))
		e.log.Info("repair mode exited", "family", e.current.Stimulus.Family)
	}

	switch {
	case timedOut:
		return metrics.OutcomeTimeout
	case correct:
		return metrics.OutcomeCorrect
	default:
		return metrics.OutcomeIncorrect
	}
}

func (e *Engine) stopCountdown() {
	e.countdown.Stop()
	e.countdown = nil
}

// #endregion answer

// #region accessors

func (e *Engine) Phase() Phase                 { return e.phase }
func (e *Engine) SessionID() string            { return e.sessionID }
func (e *Engine) Rating() int                  { return e.active }
func (e *Engine) PersistedRating() int         { return e.persisted }
func (e *Engine) Config() config.GameConfig    { return e.cfg }
func (e *Engine) Repair() repair.State         { return e.repair }
func (e *Engine) Failures() int                { return e.failures }
func (e *Engine) Schedule() schedule.State     { return e.sched }
func (e *Engine) Log() []logging.LogEntry      { return e.turnLog.Entries() }
func (e *Engine) Stats() logging.Stats         { return e.turnLog.Stats() }
func (e *Engine) History() []judge.HistoryItem { return slices.Clone(e.history) }
func (e *Engine) Countdown() *Countdown        { return e.countdown }

// Current returns the turn on screen, answered or not.
func (e *Engine) Current() (Turn, bool) {
	if e.current == nil {
		return Turn{}, false
	}
	return *e.current, true
}

// Expected returns the answer that would be scored correct for the pending turn.
// ok is false when there is no pending turn or it is a warmup turn. Used by
// scripted play.
func (e *Engine) Expected() (answer bool, ok bool) {
	if !e.pending {
		return false, false
	}
	if e.current.Repair {
		return e.claimTrue, true
	}
	if e.current.Phase == PhaseWarmup {
		return false, false
	}
	n := e.cfg.NBackLevel
	return e.history[len(e.history)-1].Result == e.history[len(e.history)-1-n].Result, true
}

// #endregion accessors
