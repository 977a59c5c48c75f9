package battleship

import (
	"context"

	"github.com/dariubs/percent"
	"github.com/google/uuid"
)

// Targeter chooses where a player fires next.
type Targeter interface {
	Target(ctx context.Context) (Coordinates, error)
}

type Player struct {
	uuid     string
	name     string
	isHuman  bool
	board    *Board
	enemy    *Board
	targeter Targeter
	shots    int
	hits     int
}

// NewPlayer wires a player to its own board and to the board it fires at.
func NewPlayer(name string, isHuman bool, board, enemy *Board, targeter Targeter) *Player {
	return &Player{
		uuid:     uuid.NewString()[:10],
		name:     name,
		isHuman:  isHuman,
		board:    board,
		enemy:    enemy,
		targeter: targeter,
	}
}

func (p *Player) Uuid() string {
	return p.uuid
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) IsHuman() bool {
	return p.isHuman
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) Enemy() *Board {
	return p.enemy
}

// Shots counts shots that were resolved on the enemy board.
func (p *Player) Shots() int {
	return p.shots
}

func (p *Player) Hits() int {
	return p.hits
}

// Accuracy is the share of resolved shots that hit, in percent.
func (p *Player) Accuracy() float64 {
	if p.shots == 0 {
		return 0
	}
	return percent.PercentOf(p.hits, p.shots)
}

func (p *Player) IsLoser() bool {
	return p.board.IsDefeated()
}

// Move fires until a shot is resolved. Out of bounds and repeated shots
// are reported through notify and the player chooses again. The returned
// bool is true when the shot landed and the player fires again.
func (p *Player) Move(ctx context.Context, notify func(Coordinates, ShotOutcome)) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		target, err := p.targeter.Target(ctx)
		if err != nil {
			return false, err
		}

		outcome := p.enemy.Shoot(target)
		if notify != nil {
			notify(target, outcome)
		}

		if !outcome.Resolved() {
			continue
		}

		p.shots++
		if outcome.GrantsExtraShot() {
			p.hits++
			return true, nil
		}
		return false, nil
	}
}
