package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/cipher-nback/internal/replay"
)

// #region command

var (
	fixturePath string
	replayJSON  bool

	replayCmd = &cobra.Command{
		Use:   "replay",
		Short: "Replay a scripted fixture and compare against its expected results",
		RunE:  runReplay,
	}

	errDiverged = errors.New("replay diverged from fixture")
)

func init() {
	replayCmd.Flags().StringVar(&fixturePath, "fixture", "", "path to fixture JSON")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "output results as JSON")
	_ = replayCmd.MarkFlagRequired("fixture")
}

// #endregion command

// #region output

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		return err
	}
	results, e, err := replay.Replay(f, logger)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if replayJSON {
		return printJSON(out, struct {
			Results []replay.Result `json:"results"`
			Summary replay.Summary  `json:"summary"`
		}{results, replay.Summarize(results, e)})
	}
	if printComparison(out, results, f.ExpectedResults) > 0 {
		return errDiverged
	}
	s := replay.Summarize(results, e)
	fmt.Fprintf(out, "warmups %d, correct %d, incorrect %d, timeouts %d, repair %d, blocks %d, rating %d\n",
		s.Warmups, s.Correct, s.Incorrect, s.Timeouts, s.RepairTurns, s.BlockSwitches, s.FinalRating)
	return nil
}

// printComparison writes a comparison table and returns the number of diverging
// turns. Expectations are matched by turn number; an expected turn that was
// never replayed diverges too. Without expectations it just lists the replayed turns.
func printComparison(w io.Writer, results []replay.Result, expected []replay.FixtureExpectedResult) int {
	fmt.Fprintf(w, "%-5s| %-12s| %-17s| %-17s| %-7s| %s\n", "Turn", "Family", "Expected", "Replayed", "Rating", "Match")
	fmt.Fprintf(w, "%-5s+%-13s+%-18s+%-18s+%-8s+%s\n",
		"-----", "-------------", "------------------", "------------------", "--------", "------")

	byTurn := make(map[int]replay.FixtureExpectedResult, len(expected))
	for _, e := range expected {
		byTurn[e.Turn] = e
	}

	diverge, compared := 0, 0
	for _, r := range results {
		exp, match := "-", "-"
		if e, ok := byTurn[r.Turn]; ok {
			delete(byTurn, r.Turn)
			compared++
			exp = e.Action
			match = "OK"
			if e.Action != r.Action || e.Rating != r.Rating {
				match = "DIFF"
				diverge++
			}
		}
		fmt.Fprintf(w, "%-5d| %-12s| %-17s| %-17s| %-7d| %s %s\n",
			r.Turn, r.Family, exp, r.Action, r.Rating, match, r.Reason)
	}
	for _, e := range expected {
		if _, missing := byTurn[e.Turn]; missing {
			delete(byTurn, e.Turn)
			compared++
			diverge++
			fmt.Fprintf(w, "%-5d| %-12s| %-17s| %-17s| %-7s| %s\n", e.Turn, "-", e.Action, "not replayed", "-", "DIFF")
		}
	}
	if len(expected) > 0 {
		fmt.Fprintf(w, "\nSummary: %d compared, %d match, %d diverge\n", compared, compared-diverge, diverge)
	}
	return diverge
}

// #endregion output
