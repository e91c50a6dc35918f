package puzzle

import (
	"fmt"

	"github.com/danielpatrickdp/cipher-nback/internal/random"
)

// #region frames

var (
	directionAngle = map[string]int{Front: 0, Right: 90, Back: 180, Left: 270}
	angleDirection = map[int]string{0: Front, 90: Right, 180: Back, 270: Left}
)

func norm360(a int) int { return ((a % 360) + 360) % 360 }

// facingOffset is how far person is turned clockwise from the shared reference.
// YOU is turned by facing relative to I; in the THEN frame the two swap.
func facingOffset(person string, facing int, frame TimeFrame) int {
	you := person == labelYou
	if frame == Then {
		you = !you
	}
	if you {
		return facing
	}
	return 0
}

// resolveDeictic converts a direction stated by speaker into asked's frame.
func resolveDeictic(stated, speaker, asked string, facing int, frame TimeFrame) string {
	abs := directionAngle[stated] + facingOffset(speaker, facing, frame)
	return angleDirection[norm360(abs-facingOffset(asked, facing, frame))]
}

// #endregion frames

// #region deictic

func generateDeictic(src random.Source, prev string, force bool, tier int) Output {
	vocab := Vocabulary(Deictic, tier)
	result := pickResult(src, vocab, prev, force)

	speaker, asked := labelI, labelYou
	if random.Bool(src, 0.5) {
		speaker, asked = asked, speaker
	}
	facing := random.Choice(src, []int{0, 180})
	if tier >= 2 {
		facing = random.Choice(src, []int{0, 90, 180, 270})
	}
	frame := Now
	if tier >= 3 && random.Bool(src, 0.5) {
		frame = Then
	}

	statedAngle := directionAngle[result] + facingOffset(asked, facing, frame) - facingOffset(speaker, facing, frame)
	stated := angleDirection[norm360(statedAngle)]
	decoy := random.Choice(src, random.Without(vocab, stated))

	alloc := random.NewAllocator(src)
	cb := newCipher(src, alloc, 1)
	cb.define(stated, decoy, labelI, labelYou)

	visual := DeicticVisual{
		Speaker:   cb.use(speaker),
		Direction: cb.use(stated),
		Asked:     cb.use(asked),
		Facing:    facing,
		TimeFrame: frame,
	}
	if tier >= 3 {
		visual.TimeSymbol = cb.use(string(frame))
	}

	return Output{
		Stimulus: Stimulus{
			Family:    Deictic,
			Tier:      tier,
			Cipher:    cb.entries(),
			Placement: placement(src),
			Visual:    visual,
			Query:     "Where is the object for the one asked?",
			Proof: fmt.Sprintf("%s says %s; %s faces %d from %s (%s) => %s sees %s",
				speaker, stated, labelYou, facing, labelI, frame, asked, result),
		},
		Result: result,
	}
}

// #endregion deictic
