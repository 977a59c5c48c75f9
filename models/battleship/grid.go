package battleship

// Display states of a grid position. The grid is presentational only,
// shot resolution never reads it.
const (
	PositionStateWater uint8 = iota
	PositionStateShip
	PositionStateHit
	PositionStateMiss

	// Water revealed around a destroyed ship
	PositionStateContour
)

type Grid [][]uint8

// Creates a new default grid
// All indexes are zero/PositionStateWater
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]uint8, gridSize)
	}
	return grid
}

func (g Grid) clone() Grid {
	out := make(Grid, len(g))
	for i := range g {
		out[i] = append([]uint8(nil), g[i]...)
	}
	return out
}
