package battleship

// TurnEvent is emitted before a player starts a move. Board views are
// taken from the human side's perspective, so the AI fleet stays hidden.
type TurnEvent struct {
	GameUuid       string    `json:"game_uuid"`
	Step           int       `json:"step"`
	Shooter        string    `json:"shooter"`
	ShooterIsHuman bool      `json:"shooter_is_human"`
	HumanBoard     BoardView `json:"human_board"`
	AIBoard        BoardView `json:"ai_board"`
}

// ShotEvent is emitted for every shot, including the ones the board
// rejected as out of bounds or repeated.
type ShotEvent struct {
	GameUuid       string      `json:"game_uuid"`
	Step           int         `json:"step"`
	Shooter        string      `json:"shooter"`
	ShooterIsHuman bool        `json:"shooter_is_human"`
	Target         Coordinates `json:"target"`
	Outcome        ShotOutcome `json:"outcome"`
}

type EndEvent struct {
	GameUuid   string       `json:"game_uuid"`
	Status     GameStatus   `json:"status"`
	Winner     string       `json:"winner"`
	HumanBoard BoardView    `json:"human_board"`
	AIBoard    BoardView    `json:"ai_board"`
	Summary    MatchSummary `json:"summary"`
}

// Observer is notified synchronously from the game loop. Events only
// carry snapshots, an observer never gets hold of a live board.
type Observer interface {
	OnTurn(ev TurnEvent)
	OnShot(ev ShotEvent)
	OnGameEnd(ev EndEvent)
}
