package connection

import (
	"context"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn, gameUuid string) *Session
	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	Serve(session *Session)

	Broadcast(gameUuid string, frame []byte, retain bool)
	CloseGame(gameUuid string)
	SessionCount(gameUuid string) int

	CleanupPeriodically(ctx context.Context)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	maxLifetime     time.Duration
	sessions        map[string]*Session

	// Latest retained frame per game, replayed to spectators joining
	// in the middle of a match.
	latest map[string][]byte

	invalidSignal []byte
	logger        zerolog.Logger
	mu            sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func NewBattleshipSessionManager(logger zerolog.Logger) *BattleshipSessionManager {
	initMapSize := 10

	invalid := NewMessage[NoPayload](CodeInvalidSignal)
	invalid.AddError("", "spectator feed is read-only")
	invalidSignal, _ := invalid.Frame()

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		latest:          make(map[string][]byte, initMapSize),
		cleanupInterval: time.Minute * 20,
		maxLifetime:     time.Minute * 30,
		invalidSignal:   invalidSignal,
		logger:          logger,
	}
}

// GenerateNewSession registers a spectator for gameUuid and queues the
// session id frame followed by the latest retained frame of the game.
func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn, gameUuid string) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, gameUuid, conn, bsm.logger)

	msg := NewMessage[RespSessionId](CodeSessionID)
	msg.AddPayload(RespSessionId{SessionID: sessionId, GameUuid: gameUuid})
	if frame, err := msg.Frame(); err == nil {
		_ = session.enqueue(frame)
	}

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	if frame, prs := bsm.latest[gameUuid]; prs {
		_ = session.enqueue(frame)
	}
	bsm.mu.Unlock()

	bsm.logger.Info().Str("session", sessionId).Str("game", gameUuid).Msg("spectator joined")
	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs || session == nil {
		return nil, cerr.ErrSessionNotExists(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(session *Session) {
	session.close()

	bsm.mu.Lock()
	delete(bsm.sessions, session.id)
	bsm.mu.Unlock()
}

// Serve runs the session until the spectator leaves or the game is
// closed. It blocks and terminates the session on return.
func (bsm *BattleshipSessionManager) Serve(session *Session) {
	defer func() {
		bsm.TerminateSession(session)
		bsm.logger.Info().Str("session", session.id).Msg("spectator left")
	}()

	go session.writeLoop()
	session.readLoop(bsm.invalidSignal)
}

// Broadcast queues frame for every spectator of gameUuid. Spectators that
// cannot keep up are dropped instead of stalling the game loop.
func (bsm *BattleshipSessionManager) Broadcast(gameUuid string, frame []byte, retain bool) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	if retain {
		bsm.latest[gameUuid] = frame
	}

	for id, session := range bsm.sessions {
		if session.gameUuid != gameUuid {
			continue
		}
		if err := session.enqueue(frame); err != nil {
			bsm.logger.Warn().Err(err).Str("session", id).Msg("dropping spectator")
			session.close()
			delete(bsm.sessions, id)
		}
	}
}

// CloseGame ends every spectator session of gameUuid after their queued
// frames are written.
func (bsm *BattleshipSessionManager) CloseGame(gameUuid string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	delete(bsm.latest, gameUuid)
	for id, session := range bsm.sessions {
		if session.gameUuid == gameUuid {
			session.close()
			delete(bsm.sessions, id)
		}
	}
}

func (bsm *BattleshipSessionManager) SessionCount(gameUuid string) int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	count := 0
	for _, session := range bsm.sessions {
		if session.gameUuid == gameUuid {
			count++
		}
	}
	return count
}

// To ensure that there is no dangling connections, sessions living longer
// than maxLifetime are closed on every cleanup tick.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		for id, session := range bsm.sessions {
			if time.Since(session.createdAt) > bsm.maxLifetime {
				session.close()
				delete(bsm.sessions, id)
				bsm.logger.Info().Str("session", id).Msg("removed stale session")
			}
		}
		bsm.mu.Unlock()
	}
}
