package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	sendBufferSize          int           = 256
	maxReadSize             int64         = 512
	writeWait               time.Duration = time.Second * 10
	connHealthCheckInterval time.Duration = time.Second * 45
	pongWait                time.Duration = connHealthCheckInterval + time.Second*15
)

// Session is one spectator connection. Frames are queued on send and
// written by writeLoop, which is the only goroutine writing to conn.
type Session struct {
	id        string
	gameUuid  string
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	logger    zerolog.Logger
	createdAt time.Time
}

func NewSession(id, gameUuid string, conn *websocket.Conn, logger zerolog.Logger) *Session {
	return &Session{
		id:        id,
		gameUuid:  gameUuid,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
		done:      make(chan struct{}),
		logger:    logger.With().Str("session", id).Str("game", gameUuid).Logger(),
		createdAt: time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) GameUuid() string {
	return s.gameUuid
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

// Done is closed once the session starts shutting down.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// enqueue never blocks the caller. It fails when the session is closed or
// its buffer is full.
func (s *Session) enqueue(frame []byte) error {
	select {
	case <-s.done:
		return NewConnErr(ConnLoopClosed)
	default:
	}

	select {
	case s.send <- frame:
		return nil
	default:
		return NewConnErr(ConnLoopSlowConsumer).AddDesc("send buffer is full")
	}
}

func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		s.logger.Warn().Err(err).Msg("timeout error")
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
		s.logger.Debug().Err(err).Msg("close error")
		return ConnLoopClosed
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger.Error().Err(err).Msg("critical error")
		return ConnLoopBreak
	}

	// Binary or badly encoded frames mean the client is not one of ours.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation) {
		s.logger.Warn().Err(err).Msg("non-critical error")
		return ConnLoopBreak
	}

	if errors.Is(err, websocket.ErrCloseSent) || errors.Is(err, net.ErrClosed) {
		return ConnLoopClosed
	}

	s.logger.Warn().Err(err).Msg("unexpected error")
	return ConnLoopBreak
}

func (s *Session) writeFrame(frame []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return NewConnErr(s.onConnErr(err)).AddDesc(err.Error())
	}
	return nil
}

// flush writes whatever is still queued. Used on shutdown so the end of
// game frame is not lost.
func (s *Session) flush() {
	for {
		select {
		case frame := <-s.send:
			if err := s.writeFrame(frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(connHealthCheckInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame := <-s.send:
			if err := s.writeFrame(frame); err != nil {
				s.close()
				return
			}

		case <-ticker.C:
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.onConnErr(err)
				s.close()
				return
			}

		case <-s.done:
			s.flush()
			_ = s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
				time.Now().Add(writeWait),
			)
			return
		}
	}
}

// readLoop only keeps the connection healthy. A failed read leaves the
// gorilla connection unusable, so any error ends the session.
func (s *Session) readLoop(invalidSignal []byte) {
	s.conn.SetReadLimit(maxReadSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.onConnErr(err)
			s.close()
			return
		}

		if err := s.enqueue(invalidSignal); err != nil {
			s.close()
			return
		}
	}
}
