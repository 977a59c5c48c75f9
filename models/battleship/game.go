package battleship

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
)

type GameStatus uint8

// Victory and defeat are seen from the human side.
const (
	StatusInProgress GameStatus = iota
	StatusVictory
	StatusDefeat
)

func (s GameStatus) String() string {
	switch s {
	case StatusVictory:
		return "victory"
	case StatusDefeat:
		return "defeat"
	default:
		return "in_progress"
	}
}

func (s GameStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *GameStatus) UnmarshalText(text []byte) error {
	for _, candidate := range []GameStatus{StatusInProgress, StatusVictory, StatusDefeat} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown game status: %q", text)
}

type Game struct {
	uuid       string
	human      *Player
	ai         *Player
	turn       int
	steps      int
	status     GameStatus
	observers  []Observer
	shotLog    []ShotEvent
	startedAt  time.Time
	finishedAt time.Time
}

func NewGame(human, ai *Player, observers ...Observer) *Game {
	return &Game{
		uuid:      uuid.NewString()[:6],
		human:     human,
		ai:        ai,
		status:    StatusInProgress,
		observers: observers,
		shotLog:   make([]ShotEvent, 0, human.Board().Size()*human.Board().Size()*2),
		startedAt: time.Now(),
	}
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) Human() *Player {
	return g.human
}

func (g *Game) AI() *Player {
	return g.ai
}

func (g *Game) Status() GameStatus {
	return g.status
}

func (g *Game) Steps() int {
	return g.steps
}

func (g *Game) IsFinished() bool {
	return g.status != StatusInProgress
}

// Winner returns nil while the game is in progress.
func (g *Game) Winner() *Player {
	switch g.status {
	case StatusVictory:
		return g.human
	case StatusDefeat:
		return g.ai
	default:
		return nil
	}
}

func (g *Game) AddObserver(o Observer) {
	g.observers = append(g.observers, o)
}

// Current returns the player that moves on the next step. The human
// moves on even turns, a landed shot keeps the turn where it is.
func (g *Game) Current() *Player {
	if g.turn%2 == 0 {
		return g.human
	}
	return g.ai
}

func (g *Game) Step(ctx context.Context) error {
	if g.IsFinished() {
		return cerr.ErrGameAlreadyFinished(g.uuid)
	}

	shooter := g.Current()
	g.steps++

	turnEv := TurnEvent{
		GameUuid:       g.uuid,
		Step:           g.steps,
		Shooter:        shooter.Name(),
		ShooterIsHuman: shooter.IsHuman(),
		HumanBoard:     g.human.Board().View(),
		AIBoard:        g.ai.Board().View(),
	}
	for _, o := range g.observers {
		o.OnTurn(turnEv)
	}

	repeat, err := shooter.Move(ctx, func(target Coordinates, outcome ShotOutcome) {
		shotEv := ShotEvent{
			GameUuid:       g.uuid,
			Step:           g.steps,
			Shooter:        shooter.Name(),
			ShooterIsHuman: shooter.IsHuman(),
			Target:         target,
			Outcome:        outcome,
		}
		if outcome.Resolved() {
			g.shotLog = append(g.shotLog, shotEv)
		}
		for _, o := range g.observers {
			o.OnShot(shotEv)
		}
	})
	if err != nil {
		return err
	}

	if !repeat {
		g.turn++
	}

	switch {
	case g.ai.IsLoser():
		g.finish(StatusVictory)
	case g.human.IsLoser():
		g.finish(StatusDefeat)
	}
	return nil
}

// Run steps the game until one fleet is destroyed.
func (g *Game) Run(ctx context.Context) error {
	for !g.IsFinished() {
		if err := g.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) finish(status GameStatus) {
	g.status = status
	g.finishedAt = time.Now()

	endEv := EndEvent{
		GameUuid:   g.uuid,
		Status:     status,
		Winner:     g.Winner().Name(),
		HumanBoard: g.human.Board().View(),
		AIBoard:    g.ai.Board().View(),
		Summary:    g.Summary(),
	}
	for _, o := range g.observers {
		o.OnGameEnd(endEv)
	}
}

func (g *Game) Summary() MatchSummary {
	return MatchSummary{
		GameUuid:    g.uuid,
		PlayerName:  g.human.Name(),
		Status:      g.status,
		Turns:       g.steps,
		PlayerShots: g.human.Shots(),
		PlayerHits:  g.human.Hits(),
		AIShots:     g.ai.Shots(),
		AIHits:      g.ai.Hits(),
		ShotLog:     append([]ShotEvent(nil), g.shotLog...),
		StartedAt:   g.startedAt,
		FinishedAt:  g.finishedAt,
	}
}
