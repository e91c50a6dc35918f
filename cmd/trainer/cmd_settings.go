package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/rating"
)

// #region command

var (
	setNBack    int
	setTimer    string
	setPractice bool
	setFamily   string

	settingsCmd = &cobra.Command{
		Use:   "settings",
		Short: "Change the persisted game settings",
		Long: `Only the flags given are changed; the rest keep their saved values.
The timer takes seconds (3-30) or "infinite". The family takes a family tag or MIXED.`,
		RunE: runSettings,
	}
)

func init() {
	bindSettingFlags(settingsCmd)
}

func bindSettingFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&setNBack, "n-back", 0, "N-back level (1-9)")
	f.StringVar(&setTimer, "timer", "", `base timer in seconds, or "infinite"`)
	f.BoolVar(&setPractice, "practice", false, "practice mode (rating is not saved)")
	f.StringVar(&setFamily, "family", "", "practice family or MIXED")
}

// #endregion command

// #region settings

func runSettings(cmd *cobra.Command, args []string) error {
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
	cfg, err := applySettingFlags(cmd, snap.Config)
	if err != nil {
		return err
	}
	if err := store.SaveConfig(cfg); err != nil {
		return err
	}
	logger.Info("settings saved", "n_back", cfg.NBackLevel, "timer", cfg.BaseTimer.String(),
		"practice", cfg.IsPracticeMode, "family", cfg.PracticeFamily)
	snap.Config = cfg
	snap.Corrupt = slices.DeleteFunc(snap.Corrupt, func(rec string) bool { return rec == "config" })
	snap.ConfigUpdatedAt = time.Now().UTC()
	printSnapshot(cmd.OutOrStdout(), inspectOutput{Snapshot: snap, Tier: rating.Tier(snap.Rating)})
	return nil
}

// applySettingFlags overlays the flags the user set onto cfg and validates it.
func applySettingFlags(cmd *cobra.Command, cfg config.GameConfig) (config.GameConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("n-back") {
		cfg.NBackLevel = setNBack
	}
	if flags.Changed("timer") {
		t, err := config.ParseTimer(setTimer)
		if err != nil {
			return cfg, fmt.Errorf("--timer: %w", err)
		}
		cfg.BaseTimer = t
	}
	if flags.Changed("practice") {
		cfg.IsPracticeMode = setPractice
	}
	if flags.Changed("family") {
		cfg.PracticeFamily = strings.ToUpper(setFamily)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// #endregion settings
