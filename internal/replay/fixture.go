package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/cipher-nback/internal/config"
	"github.com/danielpatrickdp/cipher-nback/internal/rating"
	"github.com/danielpatrickdp/cipher-nback/internal/session"
)

// #region fixture-types

// Step is one scripted player action.
type Step string

const (
	StepCorrect Step = "correct" // answer whatever would be scored correct
	StepWrong   Step = "wrong"   // answer the opposite
	StepMatch   Step = "match"
	StepNoMatch Step = "nomatch"
	StepTimeout Step = "timeout"
)

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description      string                  `json:"description"`
	Seed             uint64                  `json:"seed"`
	StartRating      *int                    `json:"start_rating,omitempty"`
	MatchProbability *float64                `json:"match_probability,omitempty"`
	Config           config.GameConfig       `json:"config"`
	Script           []Step                  `json:"script"`
	ExpectedResults  []FixtureExpectedResult `json:"expected_results"`
}

// FixtureExpectedResult pins the observable outcome of one scripted turn.
type FixtureExpectedResult struct {
	Turn   int    `json:"turn"`
	Action string `json:"action"`
	Rating int    `json:"rating"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads, parses and validates a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return &f, nil
}

// Validate checks the config and every script step.
func (f *Fixture) Validate() error {
	if err := f.Config.Validate(); err != nil {
		return err
	}
	if f.StartRating != nil && *f.StartRating < 0 {
		return fmt.Errorf("start_rating %d is negative", *f.StartRating)
	}
	for i, s := range f.Script {
		switch s {
		case StepCorrect, StepWrong, StepMatch, StepNoMatch, StepTimeout:
		default:
			return fmt.Errorf("script step %d: unknown action %q", i, s)
		}
	}
	return nil
}

// ToOptions converts the fixture's overrides to engine options.
func (f *Fixture) ToOptions() session.Options {
	opts := session.DefaultOptions()
	if f.MatchProbability != nil {
		opts.MatchProbability = *f.MatchProbability
	}
	return opts
}

// startRating is the fixture's rating or the default when the field is absent.
// An explicit 0 is honoured.
func (f *Fixture) startRating() int {
	if f.StartRating == nil {
		return rating.Default
	}
	return *f.StartRating
}

// #endregion fixture-loader
