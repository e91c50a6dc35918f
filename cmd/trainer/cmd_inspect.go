package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/cipher-nback/internal/rating"
	"github.com/danielpatrickdp/cipher-nback/internal/state"
)

// #region command

var (
	inspectJSON bool

	inspectCmd = &cobra.Command{
		Use:   "inspect",
		Short: "Show the persisted rating and settings",
		RunE:  runInspect,
	}
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON instead of table")
}

// #endregion command

// #region inspect

type inspectOutput struct {
	state.Snapshot
	Tier int `json:"tier"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Snapshot()
	if err != nil {
		return err
	}
	warnCorrupt(snap)
	out := inspectOutput{Snapshot: snap, Tier: rating.Tier(snap.Rating)}
	if inspectJSON {
		return printJSON(cmd.OutOrStdout(), out)
	}
	printSnapshot(cmd.OutOrStdout(), out)
	return nil
}

func printSnapshot(w io.Writer, o inspectOutput) {
	c := o.Config
	fmt.Fprintf(w, "%-16s %d (tier %d)  %s\n", "rating", o.Rating, o.Tier, stamp(o.RatingUpdatedAt))
	fmt.Fprintf(w, "%-16s %d\n", "n-back", c.NBackLevel)
	fmt.Fprintf(w, "%-16s %s\n", "base timer", c.BaseTimer)
	fmt.Fprintf(w, "%-16s %t\n", "practice mode", c.IsPracticeMode)
	fmt.Fprintf(w, "%-16s %s\n", "practice family", c.PracticeFamily)
	fmt.Fprintf(w, "%-16s %s\n", "settings saved", stamp(o.ConfigUpdatedAt))
	if len(o.Corrupt) > 0 {
		fmt.Fprintf(w, "%-16s %s\n", "reset (corrupt)", strings.Join(o.Corrupt, ", "))
	}
}

// warnCorrupt logs the records Snapshot replaced by defaults.
func warnCorrupt(snap state.Snapshot) {
	for _, rec := range snap.Corrupt {
		logger.Warn("persisted record is corrupt, showing defaults", "record", rec)
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "never saved"
	}
	return t.Format(time.RFC3339)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// #endregion inspect
