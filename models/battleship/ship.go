package battleship

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

type Ship struct {
	origin      Coordinates
	length      int
	orientation Orientation
	health      int
}

func NewShip(origin Coordinates, length int, orientation Orientation) *Ship {
	return &Ship{
		origin:      origin,
		length:      length,
		orientation: orientation,
		health:      length,
	}
}

// Cells returns the cells the ship covers, starting at its origin.
// Horizontal ships grow along Y, vertical ships along X.
func (sh *Ship) Cells() []Coordinates {
	cells := make([]Coordinates, 0, sh.length)
	for i := 0; i < sh.length; i++ {
		c := sh.origin
		if sh.orientation == OrientationHorizontal {
			c.Y += i
		} else {
			c.X += i
		}
		cells = append(cells, c)
	}
	return cells
}

func (sh *Ship) IsHitBy(c Coordinates) bool {
	for _, cell := range sh.Cells() {
		if cell == c {
			return true
		}
	}
	return false
}

func (sh *Ship) Origin() Coordinates {
	return sh.origin
}

func (sh *Ship) Length() int {
	return sh.length
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) Health() int {
	return sh.health
}

func (sh *Ship) IsSunk() bool {
	return sh.health == 0
}

// gotHit is only called by Board.Shoot, which guarantees each cell is
// resolved at most once.
func (sh *Ship) gotHit() {
	if sh.health > 0 {
		sh.health--
	}
}
