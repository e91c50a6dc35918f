package puzzle

import (
	"errors"
	"fmt"
)

// #region visual

// Visual is the family-specific payload handed to the renderer. The set of
// implementations is closed: one struct per family.
type Visual interface {
	Family() Family
	Validate() error
	isVisual()
}

// Premise is a single "left <symbol> right" statement.
type Premise struct {
	Left   string `json:"left"`
	Symbol string `json:"symbol"`
	Right  string `json:"right"`
}

var errEmptyVisual = errors.New("visual payload is empty")

// itemNames lists the item and node names a visual shows next to its cipher
// symbols. Those names share the allocator alphabet, so no symbol may equal one.
func itemNames(v Visual) []string {
	switch v := v.(type) {
	case ComparisonVisual:
		return v.names()
	case TemporalVisual:
		return v.names()
	case OppositionVisual:
		return v.names()
	case HierarchyVisual:
		return append(v.names(), v.Slots...)
	case ConditionalVisual:
		names := make([]string, len(v.Facts))
		for i, f := range v.Facts {
			names[i] = f.Name
		}
		return names
	case AnalogyVisual:
		var names []string
		for _, p := range v.Pairs {
			names = append(names, p.Left, p.Right)
			for _, l := range p.Links {
				names = append(names, l.Left, l.Right)
			}
		}
		return names
	}
	return nil
}

// #endregion visual

// #region chain

// ChainView is the premise list shared by the linear-order families.
type ChainView struct {
	Premises   []Premise `json:"premises"`
	QueryLeft  string    `json:"query_left"`
	QueryRight string    `json:"query_right"`
}

func (c ChainView) names() []string {
	names := make([]string, 0, 2*len(c.Premises)+2)
	for _, p := range c.Premises {
		names = append(names, p.Left, p.Right)
	}
	return append(names, c.QueryLeft, c.QueryRight)
}

func (c ChainView) validate() error {
	if len(c.Premises) == 0 || c.QueryLeft == "" || c.QueryRight == "" {
		return errEmptyVisual
	}
	if c.QueryLeft == c.QueryRight {
		return fmt.Errorf("query compares %s with itself", c.QueryLeft)
	}
	return nil
}

type ComparisonVisual struct{ ChainView }

func (ComparisonVisual) Family() Family    { return Comparison }
func (v ComparisonVisual) Validate() error { return v.validate() }
func (ComparisonVisual) isVisual()         {}

type TemporalVisual struct{ ChainView }

func (TemporalVisual) Family() Family    { return Temporal }
func (v TemporalVisual) Validate() error { return v.validate() }
func (TemporalVisual) isVisual()         {}

type OppositionVisual struct{ ChainView }

func (OppositionVisual) Family() Family    { return Opposition }
func (v OppositionVisual) Validate() error { return v.validate() }
func (OppositionVisual) isVisual()         {}

// #endregion chain

// #region hierarchy

// HierarchyVisual places nodes into physical slots; Slots order is not the tree order.
type HierarchyVisual struct {
	Slots []string `json:"slots"`
	ChainView
}

func (HierarchyVisual) Family() Family { return Hierarchy }
func (HierarchyVisual) isVisual()      {}

func (v HierarchyVisual) Validate() error {
	if len(v.Slots) < 3 {
		return errEmptyVisual
	}
	return v.validate()
}

// #endregion hierarchy

// #region causal

// CausalVisual is an operator pipeline applied to a start state. Start is "DORMANT"
// below tier 3 and a colour symbol at tier 3.
type CausalVisual struct {
	Start     string   `json:"start"`
	Operators []string `json:"operators"`
}

func (CausalVisual) Family() Family { return Causal }
func (CausalVisual) isVisual()      {}

func (v CausalVisual) Validate() error {
	if v.Start == "" || len(v.Operators) == 0 {
		return errEmptyVisual
	}
	return nil
}

// #endregion causal

// #region spatial

// Command is one turtle instruction. Steps is zero for turns.
type Command struct {
	Symbol string `json:"symbol"`
	Steps  int    `json:"steps,omitempty"`
}

// SpatialVisual is a turtle program starting at the origin.
type SpatialVisual struct {
	StartHeading string    `json:"start_heading"`
	Commands     []Command `json:"commands"`
}

func (SpatialVisual) Family() Family { return Spatial }
func (SpatialVisual) isVisual()      {}

func (v SpatialVisual) Validate() error {
	if v.StartHeading == "" || len(v.Commands) == 0 {
		return errEmptyVisual
	}
	return nil
}

// #endregion spatial

// #region deictic

// TimeFrame is the deictic time parameter. THEN swaps the perspectives.
type TimeFrame string

const (
	Now  TimeFrame = "NOW"
	Then TimeFrame = "THEN"
)

// DeicticVisual states where an object is for Speaker and asks where it is for Asked.
type DeicticVisual struct {
	Speaker    string    `json:"speaker"`
	Direction  string    `json:"direction"`
	Asked      string    `json:"asked"`
	Facing     int       `json:"facing"` // degrees clockwise YOU faces relative to I
	TimeFrame  TimeFrame `json:"time_frame"`
	TimeSymbol string    `json:"time_symbol,omitempty"`
}

func (DeicticVisual) Family() Family { return Deictic }
func (DeicticVisual) isVisual()      {}

func (v DeicticVisual) Validate() error {
	if v.Speaker == "" || v.Direction == "" || v.Asked == "" {
		return errEmptyVisual
	}
	if v.Facing%90 != 0 || v.Facing < 0 || v.Facing >= 360 {
		return fmt.Errorf("facing %d is not a right angle", v.Facing)
	}
	if v.TimeFrame == Then && v.TimeSymbol == "" {
		return errors.New("THEN frame without time symbol")
	}
	return nil
}

// #endregion deictic

// #region conditional

// Fact is a named switch and the symbol of its state.
type Fact struct {
	Name  string `json:"name"`
	State string `json:"state"`
}

// ConditionalVisual is "IF facts [op] [context] THEN colour ELSE colour".
type ConditionalVisual struct {
	Facts    []Fact `json:"facts"`
	Operator string `json:"operator,omitempty"`
	Context  string `json:"context,omitempty"` // colour symbol the context must match
	Then     string `json:"then"`
	Else     string `json:"else"`
}

func (ConditionalVisual) Family() Family { return Conditional }
func (ConditionalVisual) isVisual()      {}

func (v ConditionalVisual) Validate() error {
	if len(v.Facts) == 0 || v.Then == "" || v.Else == "" {
		return errEmptyVisual
	}
	if len(v.Facts) > 1 && v.Operator == "" {
		return errors.New("multiple facts without operator")
	}
	if v.Then == v.Else {
		return errors.New("both branches use the same symbol")
	}
	return nil
}

// #endregion conditional

// #region analogy

// PairView is one side of an analogy: the pair and the links relating it.
type PairView struct {
	Left  string    `json:"left"`
	Right string    `json:"right"`
	Links []Premise `json:"links"`
}

// AnalogyVisual compares the relation of two pairs.
type AnalogyVisual struct {
	Pairs [2]PairView `json:"pairs"`
}

func (AnalogyVisual) Family() Family { return Analogy }
func (AnalogyVisual) isVisual()      {}

func (v AnalogyVisual) Validate() error {
	for _, p := range v.Pairs {
		if p.Left == "" || p.Right == "" || len(p.Links) == 0 {
			return errEmptyVisual
		}
	}
	return nil
}

// #endregion analogy
