package battleship

import "context"

// Prompter asks a person for a shot. Implementations return two
// validated 1-indexed integers (row, column).
type Prompter interface {
	PromptCoordinates(ctx context.Context) (int, int, error)
}

// HumanTargeter translates 1-indexed input into board coordinates.
type HumanTargeter struct {
	prompter Prompter
}

var _ Targeter = (*HumanTargeter)(nil)

func NewHumanTargeter(prompter Prompter) *HumanTargeter {
	return &HumanTargeter{prompter: prompter}
}

func (h *HumanTargeter) Target(ctx context.Context) (Coordinates, error) {
	x, y, err := h.prompter.PromptCoordinates(ctx)
	if err != nil {
		return Coordinates{}, err
	}
	return NewCoordinates(x-1, y-1), nil
}
