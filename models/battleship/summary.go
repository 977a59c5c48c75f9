package battleship

import (
	"context"
	"time"
)

// MatchSummary is what gets recorded about a finished match. It is not
// enough to resume a game and is never used to.
type MatchSummary struct {
	GameUuid    string      `json:"game_uuid"`
	PlayerName  string      `json:"player_name"`
	Status      GameStatus  `json:"status"`
	Turns       int         `json:"turns"`
	PlayerShots int         `json:"player_shots"`
	PlayerHits  int         `json:"player_hits"`
	AIShots     int         `json:"ai_shots"`
	AIHits      int         `json:"ai_hits"`
	ShotLog     []ShotEvent `json:"shot_log,omitempty"`
	StartedAt   time.Time   `json:"started_at"`
	FinishedAt  time.Time   `json:"finished_at"`
}

type Totals struct {
	Games     int64 `json:"games"`
	Victories int64 `json:"victories"`
	Defeats   int64 `json:"defeats"`
}

type Recorder interface {
	RecordMatch(ctx context.Context, summary MatchSummary) error
	Totals(ctx context.Context) (Totals, error)
	PlayerTotals(ctx context.Context, playerName string) (Totals, error)
}

// NopRecorder is used when no storage is configured.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

func (NopRecorder) RecordMatch(context.Context, MatchSummary) error {
	return nil
}

func (NopRecorder) Totals(context.Context) (Totals, error) {
	return Totals{}, nil
}

func (NopRecorder) PlayerTotals(context.Context, string) (Totals, error) {
	return Totals{}, nil
}
