package connection

import (
	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
	GameUuid  string `json:"game_uuid"`
}

// RespTurn carries both boards as the human player sees them, so the AI
// fleet stays hidden from spectators too.
type RespTurn struct {
	Step           int          `json:"step"`
	Shooter        string       `json:"shooter"`
	ShooterIsHuman bool         `json:"shooter_is_human"`
	HumanBoard     mb.BoardView `json:"human_board"`
	AIBoard        mb.BoardView `json:"ai_board"`
}

type RespShot struct {
	Step    int            `json:"step"`
	Shooter string         `json:"shooter"`
	X       int            `json:"x"`
	Y       int            `json:"y"`
	Outcome mb.ShotOutcome `json:"outcome"`
}

type RespEndGame struct {
	Status      mb.GameStatus `json:"status"`
	Winner      string        `json:"winner"`
	Turns       int           `json:"turns"`
	PlayerShots int           `json:"player_shots"`
	PlayerHits  int           `json:"player_hits"`
	AIShots     int           `json:"ai_shots"`
	AIHits      int           `json:"ai_hits"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
