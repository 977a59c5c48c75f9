package battleship

import "fmt"

// Coordinates is a position on the grid. X is the row and Y is the
// column, both 0-indexed.
type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Dot[%d, %d]", c.X, c.Y)
}

// Neighbourhood returns the 3x3 block centred on c, c included.
// Cells may fall outside of any board.
func (c Coordinates) Neighbourhood() []Coordinates {
	near := make([]Coordinates, 0, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			near = append(near, Coordinates{X: c.X + dx, Y: c.Y + dy})
		}
	}
	return near
}
