package puzzle

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region turtle

var (
	headings = []string{labelNorth, labelEast, labelSouth, labelWest}
	stepX    = []int{0, 1, 0, -1}
	stepY    = []int{1, 0, -1, 0}
	rotation = []string{Rot0, Rot90, Rot180, Rot270}
)

type turtleStep struct {
	op    string // FORWARD, LEFT, RIGHT or an absolute compass label
	steps int
}

func (s turtleStep) String() string {
	if s.steps > 0 {
		return fmt.Sprintf("%s %d", s.op, s.steps)
	}
	return s.op
}

// spatialScenario is a turtle program and its start heading (index into headings).
type spatialScenario struct {
	heading int
	steps   []turtleStep
}

// turtleState is where a program leaves the turtle.
type turtleState struct {
	x, y    int
	heading int
	turns   int // net quarter turns, clockwise positive
}

func runTurtle(sc spatialScenario) turtleState {
	st := turtleState{heading: sc.heading}
	for _, s := range sc.steps {
		switch s.op {
		case labelForward:
			st.x += stepX[st.heading] * s.steps
			st.y += stepY[st.heading] * s.steps
		case Left:
			st.heading = (st.heading + 3) % 4
			st.turns--
		case Right:
			st.heading = (st.heading + 1) % 4
			st.turns++
		default:
			for i, h := range headings {
				if h == s.op {
					st.x += stepX[i] * s.steps
					st.y += stepY[i] * s.steps
				}
			}
		}
	}
	return st
}

// simulateSpatial returns the result label a program produces, or "" when the
// turtle ends on an axis (no quadrant).
func simulateSpatial(tier int, sc spatialScenario) string {
	st := runTurtle(sc)
	if tier >= 3 {
		return rotation[((st.turns%4)+4)%4]
	}
	switch {
	case st.x > 0 && st.y > 0:
		return NorthEast
	case st.x < 0 && st.y > 0:
		return NorthWest
	case st.x > 0 && st.y < 0:
		return SouthEast
	case st.x < 0 && st.y < 0:
		return SouthWest
	}
	return ""
}

// spatialFallback is the hand-authored program per target, starting north.
func spatialFallback(tier int, target string) spatialScenario {
	fwd := func(n int) turtleStep { return turtleStep{op: labelForward, steps: n} }
	left, right := turtleStep{op: Left}, turtleStep{op: Right}
	programs := map[string][]turtleStep{
		NorthEast: {fwd(2), right, fwd(1)},
		NorthWest: {fwd(2), left, fwd(1)},
		SouthEast: {right, fwd(1), right, fwd(2)},
		SouthWest: {left, fwd(1), left, fwd(2)},
		Rot0:      {left, fwd(1), right, fwd(1)},
		Rot90:     {fwd(1), right, fwd(2)},
		Rot180:    {left, fwd(1), left, fwd(1)},
		Rot270:    {fwd(2), left, fwd(1)},
	}
	return spatialScenario{heading: 0, steps: programs[target]}
}

func spatialAcceptable(tier int, steps []turtleStep) bool {
	turns := 0
	for _, s := range steps {
		if s.op == Left || s.op == Right {
			turns++
		}
	}
	if tier >= 3 {
		return turns >= 2
	}
	return turns >= 1
}

// solveSpatial searches up to bound random programs for one producing target.
func solveSpatial(src random.Source, tier int, target string, heading, bound int) (spatialScenario, bool) {
	alphabet := []turtleStep{
		{op: labelForward, steps: 1},
		{op: labelForward, steps: 2},
		{op: labelForward, steps: 3},
		{op: Left},
		{op: Right},
	}
	length := 4
	if tier >= 3 {
		length = 5
	}
	for range bound {
		steps := make([]turtleStep, length)
		for i := range steps {
			steps[i] = random.Choice(src, alphabet)
		}
		sc := spatialScenario{heading: heading, steps: steps}
		if spatialAcceptable(tier, steps) && simulateSpatial(tier, sc) == target {
			return sc, false
		}
	}
	return spatialFallback(tier, target), true
}

// #endregion turtle

// #region spatial

func generateSpatial(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Spatial, tier)
	result := pickResult(src, vocab, prev, force)

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, tier)

	var (
		sc       spatialScenario
		fellBack bool
		query    = "In which quadrant does the walker stop?"
	)
	switch tier {
	case 1:
		sc = axisProgram(src, result)
		cb.define(labelNorth, labelSouth, labelEast, labelWest)
	default:
		heading := src.IntN(4)
		sc, fellBack = solveSpatial(src, tier, result, heading, SearchBound)
		cb.defineSingle(labelForward)
		cb.define(Left, Right)
		if tier >= 3 {
			query = "How far has the walker turned, clockwise?"
		}
	}

	commands := make([]Command, len(sc.steps))
	trace := make([]string, len(sc.steps))
	for i, s := range sc.steps {
		commands[i] = Command{Symbol: cb.use(s.op), Steps: s.steps}
		trace[i] = s.String()
	}
	end := runTurtle(sc)

	return Output{
		Stimulus: Stimulus{
			Family:    Spatial,
			Tier:      tier,
			Cipher:    cb.entries(),
			Placement: placement(src),
			Visual: SpatialVisual{
				StartHeading: headings[sc.heading],
				Commands:     commands,
			},
			Query: query,
			Proof: fmt.Sprintf("start %s: %s => (%d,%d) facing %s => %s",
				headings[sc.heading], strings.Join(trace, ", "), end.x, end.y, headings[end.heading], result),
		},
		Result:       result,
		UsedFallback: fellBack,
	}
}

// axisProgram moves once vertically and once horizontally into the quadrant.
func axisProgram(src random.Source, quadrant string) spatialScenario {
	vert, horiz := labelNorth, labelEast
	if quadrant == SouthEast || quadrant == SouthWest {
		vert = labelSouth
	}
	if quadrant == NorthWest || quadrant == SouthWest {
		horiz = labelWest
	}
	steps := []turtleStep{
		{op: vert, steps: random.IntRange(src, 1, 3)},
		{op: horiz, steps: random.IntRange(src, 1, 3)},
	}
	random.Shuffle(src, steps)
	return spatialScenario{heading: 0, steps: steps}
}

// #endregion spatial
