package session

import (
	"context"
	"errors"
	"time"
)

// #region countdown

// Countdown is a cancellable answer timer. A nil or unlimited Countdown never
// fires.
type Countdown struct {
	ctx      context.Context
	cancel   context.CancelFunc
	deadline time.Time
}

// StartCountdown starts a timer of length d. d <= 0 yields a countdown that never
// expires.
func StartCountdown(parent context.Context, d time.Duration) *Countdown {
	if d <= 0 {
		ctx, cancel := context.WithCancel(parent)
		return &Countdown{ctx: ctx, cancel: cancel}
	}
	ctx, cancel := context.WithTimeout(parent, d)
	deadline, _ := ctx.Deadline()
	return &Countdown{ctx: ctx, cancel: cancel, deadline: deadline}
}

// Expired returns a channel closed when the countdown runs out. It is nil for
// unlimited or stopped countdowns so a select on it blocks forever.
func (c *Countdown) Expired() <-chan struct{} {
	if c == nil || c.deadline.IsZero() || c.ctx.Err() != nil && !c.TimedOut() {
		return nil
	}
	return c.ctx.Done()
}

// TimedOut reports whether the deadline passed before Stop.
func (c *Countdown) TimedOut() bool {
	return c != nil && errors.Is(c.ctx.Err(), context.DeadlineExceeded)
}

// Remaining is the time left at now; zero when unlimited or expired.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if c == nil || c.deadline.IsZero() || c.ctx.Err() != nil {
		return 0
	}
	return max(0, c.deadline.Sub(now))
}

// Stop cancels the countdown. Safe to call more than once and on nil.
func (c *Countdown) Stop() {
	if c != nil {
		c.cancel()
	}
}

// #endregion countdown
