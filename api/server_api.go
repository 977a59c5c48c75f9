package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	cerr "github.com/saeidalz13/battle-of-warships/internal/error"
	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
	mc "github.com/saeidalz13/battle-of-warships/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	URLQueryGameIDKeyword string = "gameID"

	shutdownTimeout time.Duration = time.Second * 5
	writeWait       time.Duration = time.Second * 5
)

var defaultPort string = "8000"

// Server exposes a read-only websocket feed of the games held by the game
// manager.
type Server struct {
	port           string
	stage          string
	allowedOrigins map[string]bool
	logger         zerolog.Logger
	gameManager    mb.GameManager
	sessionManager mc.SessionManager
	upgrader       websocket.Upgrader
	httpServer     *http.Server
}

type Option func(*Server) error

func NewServer(gameManager mb.GameManager, sessionManager mc.SessionManager, optFuncs ...Option) *Server {
	server := Server{
		stage:          StageDev,
		logger:         zerolog.Nop(),
		gameManager:    gameManager,
		sessionManager: sessionManager,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}

	server.upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     server.checkOrigin,
	}

	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return cerr.ErrStage(stage)
		}
		s.stage = stage
		return nil
	}
}

// WithAllowedOrigins limits browser origins in prod. Dev accepts any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.allowedOrigins = make(map[string]bool, len(origins))
		for _, origin := range origins {
			s.allowedOrigins[origin] = true
		}
		return nil
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

func (s *Server) Port() string {
	return s.port
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if s.stage != StageProd {
		return true
	}
	origin := r.Header.Get("Origin")
	// Non-browser clients send no origin.
	return origin == "" || s.allowedOrigins[origin]
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /battleship", s.HandleWs)
	return mux
}

func (s *Server) HandleWs(w http.ResponseWriter, r *http.Request) {
	gameUuid := r.URL.Query().Get(URLQueryGameIDKeyword)

	// Upgrade replies with an http error on failure.
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("could not open websocket connection")
		return
	}

	if _, err := s.gameManager.GetGame(gameUuid); err != nil {
		resp := mc.NewMessage[mc.NoPayload](mc.CodeInvalidGameID)
		resp.AddError(err.Error(), "game does not exist")
		_ = conn.WriteJSON(resp)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "invalid game id"),
			time.Now().Add(writeWait),
		)
		_ = conn.Close()
		s.logger.Debug().Str("game", gameUuid).Msg("rejected spectator for unknown game")
		return
	}

	session := s.sessionManager.GenerateNewSession(conn, gameUuid)
	s.logger.Info().Str("remote", conn.RemoteAddr().String()).Str("game", gameUuid).Msg("a new connection established")
	go s.sessionManager.Serve(session)
}

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              ":" + s.port,
		Handler:           s.Routes(),
		ReadHeaderTimeout: time.Second * 5,
	}

	go s.sessionManager.CleanupPeriodically(ctx)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", s.port).Msg("spectator feed listening")
		errChan <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)

	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
