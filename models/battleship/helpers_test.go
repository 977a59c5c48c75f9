package battleship

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedTargeter replays a fixed list of targets, then fails with err
// (io.EOF when unset).
type scriptedTargeter struct {
	targets []Coordinates
	err     error
}

func (s *scriptedTargeter) Target(_ context.Context) (Coordinates, error) {
	if len(s.targets) == 0 {
		if s.err != nil {
			return Coordinates{}, s.err
		}
		return Coordinates{}, io.EOF
	}
	next := s.targets[0]
	s.targets = s.targets[1:]
	return next, nil
}

func script(targets ...Coordinates) *scriptedTargeter {
	return &scriptedTargeter{targets: targets}
}

func newBoardWith(t *testing.T, ships ...*Ship) *Board {
	t.Helper()
	board := NewBoard(GridSize)
	for _, ship := range ships {
		require.NoError(t, board.PlaceShip(ship))
	}
	board.Begin()
	return board
}

type recordingObserver struct {
	turns []TurnEvent
	shots []ShotEvent
	ends  []EndEvent
}

func (r *recordingObserver) OnTurn(ev TurnEvent)   { r.turns = append(r.turns, ev) }
func (r *recordingObserver) OnShot(ev ShotEvent)   { r.shots = append(r.shots, ev) }
func (r *recordingObserver) OnGameEnd(ev EndEvent) { r.ends = append(r.ends, ev) }
