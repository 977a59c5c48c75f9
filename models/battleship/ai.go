package battleship

import (
	"context"
	"math/rand/v2"
)

// AITargeter fires at uniformly random in-bounds cells. It keeps no
// memory of earlier shots, the board rejects repeats.
type AITargeter struct {
	size int
	rng  *rand.Rand
}

var _ Targeter = (*AITargeter)(nil)

func NewAITargeter(size int, rng *rand.Rand) *AITargeter {
	return &AITargeter{size: size, rng: rng}
}

func (ai *AITargeter) Target(_ context.Context) (Coordinates, error) {
	return NewCoordinates(ai.rng.IntN(ai.size), ai.rng.IntN(ai.size)), nil
}
