package battleship

import (
	"math/rand/v2"
	"sync"
	"time"

	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
)

const AIPlayerName = "Enemy"

type GameManager interface {
	CreateGame(playerName string, human Targeter, observers ...Observer) *Game
	GetGame(gameUuid string) (*Game, error)
	TerminateGame(gameUuid string)
}

// BattleshipGameManager keeps track of live games. Only the registry is
// shared, a game itself is driven by a single goroutine.
type BattleshipGameManager struct {
	placer *Placer
	rng    *rand.Rand
	games  map[string]*Game
	mu     sync.RWMutex
}

var _ GameManager = (*BattleshipGameManager)(nil)

// The placer and the AI share rng, both are only used from the game
// loop goroutine.
func NewBattleshipGameManager(rng *rand.Rand, placerOpts ...PlacerOption) *BattleshipGameManager {
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	opts := append([]PlacerOption{WithRand(rng)}, placerOpts...)
	return &BattleshipGameManager{
		placer: NewPlacer(GridSize, opts...),
		rng:    rng,
		games:  make(map[string]*Game, 2),
	}
}

// CreateGame places both fleets and registers the new game. The AI fleet
// is hidden from views.
func (bgm *BattleshipGameManager) CreateGame(playerName string, human Targeter, observers ...Observer) *Game {
	humanBoard := bgm.placer.RandomBoard()
	aiBoard := bgm.placer.RandomBoard()
	aiBoard.SetHidden(true)

	humanPlayer := NewPlayer(playerName, true, humanBoard, aiBoard, human)
	aiPlayer := NewPlayer(AIPlayerName, false, aiBoard, humanBoard, NewAITargeter(GridSize, bgm.rng))

	game := NewGame(humanPlayer, aiPlayer, observers...)

	bgm.mu.Lock()
	bgm.games[game.Uuid()] = game
	bgm.mu.Unlock()

	return game
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*Game, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}
	if game == nil {
		return nil, cerr.ErrGameIsNil(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) Placer() *Placer {
	return bgm.placer
}
