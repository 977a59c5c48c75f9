package api

import (
	"github.com/rs/zerolog"

	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
	mc "github.com/saeidalz13/battle-of-warships/models/connection"
)

// Feed turns game events into spectator frames.
type Feed struct {
	sessionManager mc.SessionManager
	logger         zerolog.Logger
}

var _ mb.Observer = (*Feed)(nil)

func NewFeed(sessionManager mc.SessionManager, logger zerolog.Logger) *Feed {
	return &Feed{sessionManager: sessionManager, logger: logger}
}

func publish[T any](f *Feed, gameUuid string, msg mc.Message[T], retain bool) {
	frame, err := msg.Frame()
	if err != nil {
		f.logger.Error().Err(err).Uint8("code", msg.Code).Msg("failed to encode spectator frame")
		return
	}
	f.sessionManager.Broadcast(gameUuid, frame, retain)
}

// Turn frames carry full board views, the latest one is retained for
// late spectators.
func (f *Feed) OnTurn(ev mb.TurnEvent) {
	msg := mc.NewMessage[mc.RespTurn](mc.CodeTurn)
	msg.AddPayload(mc.RespTurn{
		Step:           ev.Step,
		Shooter:        ev.Shooter,
		ShooterIsHuman: ev.ShooterIsHuman,
		HumanBoard:     ev.HumanBoard,
		AIBoard:        ev.AIBoard,
	})
	publish(f, ev.GameUuid, msg, true)
}

func (f *Feed) OnShot(ev mb.ShotEvent) {
	if !ev.Outcome.Resolved() {
		return
	}

	msg := mc.NewMessage[mc.RespShot](mc.CodeShot)
	msg.AddPayload(mc.RespShot{
		Step:    ev.Step,
		Shooter: ev.Shooter,
		X:       ev.Target.X,
		Y:       ev.Target.Y,
		Outcome: ev.Outcome,
	})
	publish(f, ev.GameUuid, msg, false)
}

func (f *Feed) OnGameEnd(ev mb.EndEvent) {
	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.RespEndGame{
		Status:      ev.Status,
		Winner:      ev.Winner,
		Turns:       ev.Summary.Turns,
		PlayerShots: ev.Summary.PlayerShots,
		PlayerHits:  ev.Summary.PlayerHits,
		AIShots:     ev.Summary.AIShots,
		AIHits:      ev.Summary.AIHits,
	})
	publish(f, ev.GameUuid, msg, false)
	f.sessionManager.CloseGame(ev.GameUuid)
}
