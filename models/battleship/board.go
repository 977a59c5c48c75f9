package battleship

import (
	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
)

const GridSize int = 6

type Board struct {
	size      int
	hidden    bool
	destroyed int
	grid      Grid
	ships     []*Ship

	// Cells that can no longer take a ship (placement phase) or a shot
	// (combat phase).
	blocked map[Coordinates]struct{}
}

func NewBoard(size int) *Board {
	return &Board{
		size:    size,
		grid:    NewGrid(size),
		ships:   make([]*Ship, 0, len(StandardFleet)),
		blocked: make(map[Coordinates]struct{}, size*size),
	}
}

func (b *Board) Size() int {
	return b.size
}

func (b *Board) Hidden() bool {
	return b.hidden
}

// SetHidden controls whether views of the board show ship positions.
func (b *Board) SetHidden(hidden bool) {
	b.hidden = hidden
}

func (b *Board) Ships() []*Ship {
	return append([]*Ship(nil), b.ships...)
}

func (b *Board) Destroyed() int {
	return b.destroyed
}

// IsDefeated reports whether every ship on the board has been destroyed.
func (b *Board) IsDefeated() bool {
	return len(b.ships) > 0 && b.destroyed == len(b.ships)
}

func (b *Board) IsBlocked(c Coordinates) bool {
	_, prs := b.blocked[c]
	return prs
}

func (b *Board) IsOutOfBounds(c Coordinates) bool {
	return c.X < 0 || c.X >= b.size || c.Y < 0 || c.Y >= b.size
}

// contour reserves every in-bounds cell around the ship, the ship's own
// cells included. With reveal set, newly reserved cells are marked on
// the grid so the water around a destroyed ship becomes visible.
func (b *Board) contour(ship *Ship, reveal bool) {
	for _, cell := range ship.Cells() {
		for _, near := range cell.Neighbourhood() {
			if b.IsOutOfBounds(near) || b.IsBlocked(near) {
				continue
			}
			if reveal {
				b.grid[near.X][near.Y] = PositionStateContour
			}
			b.blocked[near] = struct{}{}
		}
	}
}

// PlaceShip adds the ship to the board. Every cell is validated before
// anything is written, so a rejected ship leaves the board untouched.
func (b *Board) PlaceShip(ship *Ship) error {
	cells := ship.Cells()
	for _, cell := range cells {
		if b.IsOutOfBounds(cell) || b.IsBlocked(cell) {
			return cerr.ErrShipPlacement(cell.X, cell.Y)
		}
	}

	for _, cell := range cells {
		b.grid[cell.X][cell.Y] = PositionStateShip
		b.blocked[cell] = struct{}{}
	}
	b.ships = append(b.ships, ship)
	b.contour(ship, false)
	return nil
}

// Begin ends the placement phase. From here on blocked only tracks
// spent shots and the contours of destroyed ships.
func (b *Board) Begin() {
	b.blocked = make(map[Coordinates]struct{}, b.size*b.size)
}

func (b *Board) Shoot(c Coordinates) ShotOutcome {
	if b.IsOutOfBounds(c) {
		return ShotOutOfBounds
	}
	if b.IsBlocked(c) {
		return ShotRepeat
	}

	b.blocked[c] = struct{}{}

	for _, ship := range b.ships {
		if !ship.IsHitBy(c) {
			continue
		}

		ship.gotHit()
		b.grid[c.X][c.Y] = PositionStateHit
		if ship.IsSunk() {
			b.destroyed++
			b.contour(ship, true)
			return ShotSink
		}
		return ShotHit
	}

	b.grid[c.X][c.Y] = PositionStateMiss
	return ShotMiss
}

// BoardView is a detached snapshot of a board, safe to hand to renderers
// and other goroutines. Ships of a hidden board are reported as water.
type BoardView struct {
	Size      int  `json:"size"`
	Hidden    bool `json:"hidden"`
	Ships     int  `json:"ships"`
	Destroyed int  `json:"destroyed"`
	Cells     Grid `json:"cells"`
}

func (b *Board) View() BoardView {
	cells := b.grid.clone()
	if b.hidden {
		for i := range cells {
			for j := range cells[i] {
				if cells[i][j] == PositionStateShip {
					cells[i][j] = PositionStateWater
				}
			}
		}
	}

	return BoardView{
		Size:      b.size,
		Hidden:    b.hidden,
		Ships:     len(b.ships),
		Destroyed: b.destroyed,
		Cells:     cells,
	}
}
