package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battle-of-warships/models/battleship"
	mc "github.com/saeidalz13/battle-of-warships/models/connection"
)

var dialer = websocket.Dialer{
	HandshakeTimeout: 5 * time.Second,
}

type testEnv struct {
	url            string
	gameManager    *mb.BattleshipGameManager
	sessionManager *mc.BattleshipSessionManager
}

func newTestEnv(t *testing.T, opts ...Option) testEnv {
	t.Helper()
	bgm := mb.NewBattleshipGameManager(mb.NewRand(21))
	bsm := mc.NewBattleshipSessionManager(zerolog.Nop())
	server := NewServer(bgm, bsm, opts...)

	srv := httptest.NewServer(server.Routes())
	t.Cleanup(srv.Close)

	return testEnv{
		url:            "ws" + strings.TrimPrefix(srv.URL, "http") + "/battleship",
		gameManager:    bgm,
		sessionManager: bsm,
	}
}

func dial(t *testing.T, url, gameUuid string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := dialer.Dial(url+"?"+URLQueryGameIDKeyword+"="+gameUuid, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestHandleWs_UnknownGame(t *testing.T) {
	env := newTestEnv(t)
	conn := dial(t, env.url, "nope00", nil)

	var msg mc.Message[mc.NoPayload]
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, mc.CodeInvalidGameID, msg.Code)
	require.NotNil(t, msg.Error)
	assert.Equal(t, "game does not exist", msg.Error.Message)

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.ClosePolicyViolation), "got %v", err)
}

func TestHandleWs_StreamsWholeMatch(t *testing.T) {
	env := newTestEnv(t)
	feed := NewFeed(env.sessionManager, zerolog.Nop())

	game := env.gameManager.CreateGame("captain", mb.NewAITargeter(mb.GridSize, mb.NewRand(22)), feed)
	conn := dial(t, env.url, game.Uuid(), nil)

	var hello mc.Message[mc.RespSessionId]
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, mc.CodeSessionID, hello.Code)
	assert.Equal(t, game.Uuid(), hello.Payload.GameUuid)

	require.NoError(t, game.Run(context.Background()))

	turns, shots := 0, 0
	var end mc.RespEndGame
readLoop:
	for {
		var msg mc.Message[json.RawMessage]
		require.NoError(t, conn.ReadJSON(&msg))

		switch msg.Code {
		case mc.CodeTurn:
			var turn mc.RespTurn
			require.NoError(t, json.Unmarshal(msg.Payload, &turn))
			assert.True(t, turn.AIBoard.Hidden)
			turns++
		case mc.CodeShot:
			shots++
		case mc.CodeEndGame:
			require.NoError(t, json.Unmarshal(msg.Payload, &end))
			break readLoop
		default:
			t.Fatalf("unexpected code %d", msg.Code)
		}
	}

	summary := game.Summary()
	assert.Equal(t, summary.Turns, turns)
	assert.Len(t, summary.ShotLog, shots)
	assert.Equal(t, game.Status(), end.Status)
	assert.Equal(t, summary.PlayerShots, end.PlayerShots)

	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Equal(t, 0, env.sessionManager.SessionCount(game.Uuid()))
}

func TestHandleWs_LateSpectatorSeesCurrentBoards(t *testing.T) {
	env := newTestEnv(t)
	feed := NewFeed(env.sessionManager, zerolog.Nop())
	game := env.gameManager.CreateGame("captain", mb.NewAITargeter(mb.GridSize, mb.NewRand(23)), feed)

	require.NoError(t, game.Step(context.Background()))

	conn := dial(t, env.url, game.Uuid(), nil)
	var hello mc.Message[mc.RespSessionId]
	require.NoError(t, conn.ReadJSON(&hello))

	var turn mc.Message[mc.RespTurn]
	require.NoError(t, conn.ReadJSON(&turn))
	assert.Equal(t, mc.CodeTurn, turn.Code)
	assert.Equal(t, 1, turn.Payload.Step)
	assert.Equal(t, mb.GridSize, turn.Payload.HumanBoard.Size)
}

func TestHandleWs_ProdRejectsForeignOrigin(t *testing.T) {
	env := newTestEnv(t, WithStage(StageProd), WithAllowedOrigins("https://warships.example"))
	game := env.gameManager.CreateGame("captain", mb.NewAITargeter(mb.GridSize, mb.NewRand(24)))

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	_, resp, err := dialer.Dial(env.url+"?"+URLQueryGameIDKeyword+"="+game.Uuid(), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	header.Set("Origin", "https://warships.example")
	conn := dial(t, env.url, game.Uuid(), header)
	var hello mc.Message[mc.RespSessionId]
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, mc.CodeSessionID, hello.Code)
}

func TestNewServer_Options(t *testing.T) {
	bgm := mb.NewBattleshipGameManager(mb.NewRand(1))
	bsm := mc.NewBattleshipSessionManager(zerolog.Nop())

	assert.Equal(t, defaultPort, NewServer(bgm, bsm).Port())
	assert.Equal(t, "9191", NewServer(bgm, bsm, WithPort("9191")).Port())
	assert.Panics(t, func() { NewServer(bgm, bsm, WithStage("staging")) })
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	bgm := mb.NewBattleshipGameManager(mb.NewRand(1))
	bsm := mc.NewBattleshipSessionManager(zerolog.Nop())
	server := NewServer(bgm, bsm, WithPort("0"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
