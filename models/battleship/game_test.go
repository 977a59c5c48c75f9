package battleship

import (
	"context"
	"encoding/json"
	"testing"

	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newScriptedGame sets the human fleet to a single cell at (0, 0) and the
// AI fleet to a two cell ship at (3, 3)-(3, 4).
func newScriptedGame(t *testing.T, humanScript, aiScript *scriptedTargeter, observers ...Observer) *Game {
	t.Helper()
	humanBoard := newBoardWith(t, NewShip(NewCoordinates(0, 0), 1, OrientationHorizontal))
	aiBoard := newBoardWith(t, NewShip(NewCoordinates(3, 3), 2, OrientationHorizontal))
	aiBoard.SetHidden(true)

	human := NewPlayer("captain", true, humanBoard, aiBoard, humanScript)
	ai := NewPlayer(AIPlayerName, false, aiBoard, humanBoard, aiScript)
	return NewGame(human, ai, observers...)
}

func TestGame_HitKeepsTurn(t *testing.T) {
	obs := &recordingObserver{}
	game := newScriptedGame(t,
		script(NewCoordinates(3, 3), NewCoordinates(3, 4)),
		script(),
		obs,
	)

	require.NoError(t, game.Run(context.Background()))

	assert.Equal(t, StatusVictory, game.Status())
	assert.Equal(t, game.Human(), game.Winner())
	assert.Equal(t, 2, game.Steps())
	assert.Equal(t, 0, game.AI().Shots())

	require.Len(t, obs.turns, 2)
	for _, turn := range obs.turns {
		assert.True(t, turn.ShooterIsHuman)
	}
	require.Len(t, obs.ends, 1)
	assert.Equal(t, "captain", obs.ends[0].Winner)
	assert.Equal(t, 1, obs.ends[0].AIBoard.Destroyed)
}

func TestGame_MissPassesTurn(t *testing.T) {
	obs := &recordingObserver{}
	game := newScriptedGame(t,
		script(NewCoordinates(5, 5), NewCoordinates(5, 4)),
		script(NewCoordinates(4, 4), NewCoordinates(0, 0)),
		obs,
	)

	require.NoError(t, game.Step(context.Background()))
	assert.False(t, game.Current().IsHuman())

	require.NoError(t, game.Step(context.Background()))
	assert.True(t, game.Current().IsHuman(), "a miss hands the turn back")

	require.NoError(t, game.Run(context.Background()))
	assert.Equal(t, StatusDefeat, game.Status())
	assert.Equal(t, game.AI(), game.Winner())

	summary := game.Summary()
	assert.Equal(t, "captain", summary.PlayerName)
	assert.Equal(t, 4, summary.Turns)
	assert.Equal(t, 2, summary.PlayerShots)
	assert.Equal(t, 0, summary.PlayerHits)
	assert.Equal(t, 2, summary.AIShots)
	assert.Equal(t, 1, summary.AIHits)
	assert.Len(t, summary.ShotLog, 4)
	require.Len(t, obs.ends, 1)
	assert.Equal(t, StatusDefeat, obs.ends[0].Summary.Status)
	assert.False(t, summary.FinishedAt.Before(summary.StartedAt))
}

func TestGame_RejectedShotsAreObservedButNotLogged(t *testing.T) {
	obs := &recordingObserver{}
	game := newScriptedGame(t,
		script(NewCoordinates(9, 9), NewCoordinates(5, 5)),
		script(),
		obs,
	)

	require.NoError(t, game.Step(context.Background()))

	require.Len(t, obs.shots, 2)
	assert.Equal(t, ShotOutOfBounds, obs.shots[0].Outcome)
	assert.Equal(t, ShotMiss, obs.shots[1].Outcome)
	assert.Len(t, game.Summary().ShotLog, 1)
}

func TestGame_StepAfterFinish(t *testing.T) {
	game := newScriptedGame(t, script(NewCoordinates(3, 3), NewCoordinates(3, 4)), script())
	require.NoError(t, game.Run(context.Background()))

	err := game.Step(context.Background())
	require.ErrorIs(t, err, cerr.ErrGameFinished)
}

func TestGame_RunStopsOnTargeterError(t *testing.T) {
	game := newScriptedGame(t, script(NewCoordinates(5, 5)), script())

	err := game.Run(context.Background())
	require.Error(t, err)
	assert.False(t, game.IsFinished())
	assert.Nil(t, game.Winner())
}

func TestGame_TurnEventHidesAIFleet(t *testing.T) {
	obs := &recordingObserver{}
	game := newScriptedGame(t, script(NewCoordinates(5, 5)), script(), obs)
	require.NoError(t, game.Step(context.Background()))

	require.Len(t, obs.turns, 1)
	assert.Equal(t, PositionStateWater, obs.turns[0].AIBoard.Cells[3][3])
	assert.Equal(t, PositionStateShip, obs.turns[0].HumanBoard.Cells[0][0])
}

func TestGame_FullRandomMatchTerminates(t *testing.T) {
	manager := NewBattleshipGameManager(NewRand(11))
	human := NewAITargeter(GridSize, NewRand(12))
	game := manager.CreateGame("bot", human)

	require.NoError(t, game.Run(context.Background()))
	assert.True(t, game.IsFinished())

	loser := game.AI()
	if game.Status() == StatusDefeat {
		loser = game.Human()
	}
	assert.True(t, loser.IsLoser())
	assert.LessOrEqual(t, game.Human().Shots(), GridSize*GridSize)
	assert.LessOrEqual(t, game.AI().Shots(), GridSize*GridSize)
}

func TestGameStatus_Text(t *testing.T) {
	raw, err := json.Marshal(StatusVictory)
	require.NoError(t, err)
	assert.Equal(t, `"victory"`, string(raw))

	var status GameStatus
	require.NoError(t, json.Unmarshal([]byte(`"defeat"`), &status))
	assert.Equal(t, StatusDefeat, status)
	assert.Error(t, json.Unmarshal([]byte(`"draw"`), &status))

	var outcome ShotOutcome
	require.NoError(t, json.Unmarshal([]byte(`"sink"`), &outcome))
	assert.Equal(t, ShotSink, outcome)
}
