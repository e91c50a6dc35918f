package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/cipher-nback/internal/puzzle"
)

// #region timer

// Timer is the base answer window in seconds, or Infinite.
type Timer int

const (
	// Infinite disables the countdown.
	Infinite Timer = -1

	MinTimer Timer = 3
	MaxTimer Timer = 30

	infiniteText = "infinite"
)

// IsInfinite reports whether the timer is the infinite sentinel.
func (t Timer) IsInfinite() bool { return t == Infinite }

// Seconds returns the base window, or -1 when infinite.
func (t Timer) Seconds() int { return int(t) }

func (t Timer) String() string {
	if t.IsInfinite() {
		return infiniteText
	}
	return strconv.Itoa(int(t))
}

// ParseTimer accepts "infinite" or an integer number of seconds.
func ParseTimer(s string) (Timer, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, infiniteText) {
		return Infinite, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parse timer %q: %w", s, err)
	}
	return Timer(n), nil
}

func (t Timer) MarshalJSON() ([]byte, error) {
	if t.IsInfinite() {
		return json.Marshal(infiniteText)
	}
	return json.Marshal(int(t))
}

func (t *Timer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseTimer(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("timer must be a number or %q: %w", infiniteText, err)
	}
	*t = Timer(n)
	return nil
}

func (t Timer) MarshalYAML() (any, error) {
	if t.IsInfinite() {
		return infiniteText, nil
	}
	return int(t), nil
}

func (t *Timer) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseTimer(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// #endregion timer

// #region game-config

// Mixed is the practice family value that draws any family each turn.
const Mixed = "MIXED"

// GameConfig is the player-facing configuration record.
type GameConfig struct {
	NBackLevel     int    `json:"n_back" yaml:"n_back" validate:"min=1,max=9"`
	BaseTimer      Timer  `json:"base_timer" yaml:"base_timer" validate:"timer"`
	IsPracticeMode bool   `json:"practice_mode" yaml:"practice_mode"`
	PracticeFamily string `json:"practice_family" yaml:"practice_family" validate:"family"`
}

// DefaultGameConfig is the record assumed when nothing was persisted.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		NBackLevel:     1,
		BaseTimer:      10,
		IsPracticeMode: false,
		PracticeFamily: Mixed,
	}
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("timer", validateTimer)
	_ = validate.RegisterValidation("family", validateFamily)
}

func validateTimer(fl validator.FieldLevel) bool {
	t := Timer(fl.Field().Int())
	return t.IsInfinite() || (t >= MinTimer && t <= MaxTimer)
}

func validateFamily(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == Mixed {
		return true
	}
	_, ok := puzzle.ParseFamily(s)
	return ok
}

// Validate checks the ranges of every field.
func (c GameConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// PracticeLock returns the family practice mode pins generation to, if any.
// MIXED practice returns false: any family may be drawn.
func (c GameConfig) PracticeLock() (puzzle.Family, bool) {
	if !c.IsPracticeMode {
		return "", false
	}
	return puzzle.ParseFamily(c.PracticeFamily)
}

// #endregion game-config
