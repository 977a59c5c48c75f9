package battleship

import "fmt"

type ShotOutcome uint8

const (
	ShotOutOfBounds ShotOutcome = iota
	ShotRepeat
	ShotHit
	ShotSink
	ShotMiss
)

func (o ShotOutcome) String() string {
	switch o {
	case ShotOutOfBounds:
		return "out_of_bounds"
	case ShotRepeat:
		return "repeat"
	case ShotHit:
		return "hit"
	case ShotSink:
		return "sink"
	case ShotMiss:
		return "miss"
	default:
		return "unknown"
	}
}

func (o ShotOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *ShotOutcome) UnmarshalText(text []byte) error {
	for _, candidate := range []ShotOutcome{ShotOutOfBounds, ShotRepeat, ShotHit, ShotSink, ShotMiss} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown shot outcome: %q", text)
}

// Resolved reports whether the shot was spent on the board. OutOfBounds
// and Repeat ask the shooter to choose again.
func (o ShotOutcome) Resolved() bool {
	return o == ShotHit || o == ShotSink || o == ShotMiss
}

// GrantsExtraShot reports whether the shooter fires again.
func (o ShotOutcome) GrantsExtraShot() bool {
	return o == ShotHit || o == ShotSink
}
