package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/logging"
	"github.com/danielpatrickdp/cipher-nback/internal/repair"
	"github.com/danielpatrickdp/cipher-nback/internal/session"
)

// #region render

func renderTurn(w io.Writer, t session.Turn, n int) {
	st := t.Stimulus
	fmt.Fprintln(w)
	if t.BlockSwitch {
		fmt.Fprintf(w, "=== new block: %s ===\n", st.Family)
	}
	header := fmt.Sprintf("turn %d  %s  tier %d  %s", t.Number, st.Family, st.Tier, t.Phase)
	if t.Budget > 0 {
		header += fmt.Sprintf("  %.0fs", t.Budget.Seconds())
	}
	fmt.Fprintln(w, header)

	keys := make([]string, len(st.Cipher))
	for i, c := range st.Cipher {
		keys[i] = c.Symbol + "=" + c.Meaning
	}
	fmt.Fprintf(w, "cipher (%s): %s\n", strings.ToLower(string(st.Placement)), strings.Join(keys, "  "))

	if body, err := json.Marshal(st.Visual); err == nil {
		fmt.Fprintf(w, "puzzle: %s\n", body)
	}
	if len(st.ContextColors) > 0 {
		fmt.Fprintf(w, "context: %s\n", strings.Join(st.ContextColors, ", "))
	}
	fmt.Fprintf(w, "%s\n", st.Query)

	switch {
	case t.Repair:
		fmt.Fprintf(w, "repair: is the answer %s?\n", t.Claim)
	case t.Phase == session.PhaseWarmup:
		fmt.Fprintf(w, "warmup: remember this result (%d-back)\n", n)
	default:
		fmt.Fprintf(w, "same result as %d turn(s) ago?\n", n)
	}
}

func renderFeedback(w io.Writer, e logging.LogEntry, eng *session.Engine) {
	switch {
	case e.Warmup:
		fmt.Fprintf(w, "result was %s\n", e.Current.Result)
		return
	case e.TimedOut:
		fmt.Fprint(w, "timeout")
	case e.Correct:
		fmt.Fprint(w, "correct")
	default:
		fmt.Fprint(w, "wrong")
	}
	fmt.Fprintf(w, "  result %s", e.Current.Result)
	if e.Target != nil {
		fmt.Fprintf(w, " vs %s", e.Target.Result)
	}
	fmt.Fprintf(w, "  (%s)  rating %d\n", e.Current.Stimulus.Proof, e.Rating)

	if r := eng.Repair(); r.Active {
		fmt.Fprintf(w, "repair mode on %s: %d/%d\n", r.LockedFamily, r.ConsecutiveSuccesses, repair.DefaultConfig().SuccessThreshold)
	}
}

// #endregion render
