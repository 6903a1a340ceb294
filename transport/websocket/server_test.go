package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/markdown"
	"github.com/rocketscienceinc/playground-backend/internal/repository"
	"github.com/rocketscienceinc/playground-backend/internal/repository/storage"
	"github.com/rocketscienceinc/playground-backend/internal/service"
	"github.com/rocketscienceinc/playground-backend/internal/tictactoe"
	"github.com/rocketscienceinc/playground-backend/pkg/httpserver"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sqlite, err := storage.NewSQLite(filepath.Join(t.TempDir(), "playground.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })
	require.NoError(t, sqlite.Init(context.Background()))

	terminal, err := markdown.NewTerminalRenderer("notty", 80)
	require.NoError(t, err)

	games := service.NewGameService(
		logger,
		repository.NewMemoryGameRepository(),
		repository.NewScoreRepository(sqlite.Connection),
		service.NewBotService(logger, tictactoe.Strategies(nil)),
		entity.DifficultyHard,
	)

	server := httptest.NewServer(New(logger, games, service.NewMarkdownService(logger, markdown.New(), terminal)).Handler())
	t.Cleanup(server.Close)

	return server
}

func dial(t *testing.T, server *httptest.Server, header http.Header) (*websocket.Conn, *http.Response) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"

	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn, resp
}

func send(t *testing.T, conn *websocket.Conn, action string, payload any) *Response {
	t.Helper()

	data, err := json.Marshal(payload)
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: data}))

	return receive(t, conn)
}

func receive(t *testing.T, conn *websocket.Conn) *Response {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var response Response
	require.NoError(t, conn.ReadJSON(&response))

	return &response
}

func TestServer_Handshake(t *testing.T) {
	server := newTestServer(t)

	t.Run("Issues a player cookie", func(t *testing.T) {
		_, resp := dial(t, server, nil)

		cookies := resp.Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, httpserver.PlayerCookieName, cookies[0].Name)
	})

	t.Run("Keeps a known player", func(t *testing.T) {
		header := http.Header{}
		header.Add("Cookie", httpserver.PlayerCookieName+"=player-1")

		conn, resp := dial(t, server, header)

		assert.Empty(t, resp.Cookies())

		response := send(t, conn, actionGameNew, Payload{})
		require.Equal(t, actionGameNew, response.Action)
		assert.Equal(t, "player-1", response.Payload.Game.PlayerID)
	})
}

func TestServer_Game(t *testing.T) {
	server := newTestServer(t)
	conn, _ := dial(t, server, nil)

	// Given: a new game against the bot
	response := send(t, conn, actionGameNew, Payload{Difficulty: "hard"})
	require.Equal(t, actionGameNew, response.Action, response.Payload.Error)
	game := response.Payload.Game
	require.NotNil(t, game)

	// When: the player takes the center
	cell := 4
	response = send(t, conn, actionGameTurn, Payload{GameID: game.ID, Cell: &cell})

	// Then: the reply carries both moves
	require.Equal(t, actionGameTurn, response.Action, response.Payload.Error)
	game = response.Payload.Game
	assert.Equal(t, entity.PlayerX, game.Board[4])
	assert.Len(t, game.Board.EmptyCells(), 7)

	t.Run("Get returns the stored game", func(t *testing.T) {
		response := send(t, conn, actionGameGet, Payload{GameID: game.ID})

		require.Equal(t, actionGameGet, response.Action)
		assert.Equal(t, game.Board, response.Payload.Game.Board)
	})

	t.Run("Occupied cells are reported", func(t *testing.T) {
		response := send(t, conn, actionGameTurn, Payload{GameID: game.ID, Cell: &cell})

		assert.Equal(t, actionError, response.Action)
		assert.Equal(t, actionGameTurn, response.Payload.Request)
		assert.Contains(t, response.Payload.Error, "occupied")
	})

	t.Run("Turns need a cell", func(t *testing.T) {
		response := send(t, conn, actionGameTurn, Payload{GameID: game.ID})

		assert.Equal(t, actionError, response.Action)
		assert.Equal(t, errCellRequired.Error(), response.Payload.Error)
	})

	t.Run("Reset empties the board", func(t *testing.T) {
		response := send(t, conn, actionGameReset, Payload{GameID: game.ID})

		require.Equal(t, actionGameReset, response.Action)
		assert.Equal(t, entity.Board{}, response.Payload.Game.Board)
	})

	t.Run("Unknown game", func(t *testing.T) {
		response := send(t, conn, actionGameGet, Payload{GameID: "missing"})

		assert.Equal(t, actionError, response.Action)
		assert.Contains(t, response.Payload.Error, "game not found")
	})

	t.Run("Score starts empty", func(t *testing.T) {
		response := send(t, conn, actionScoreGet, nil)

		require.Equal(t, actionScoreGet, response.Action)
		assert.Equal(t, entity.Score{PlayerID: response.Payload.Score.PlayerID}, *response.Payload.Score)
		assert.NotEmpty(t, response.Payload.Score.PlayerID)
	})
}

func TestServer_GameOwnership(t *testing.T) {
	server := newTestServer(t)
	owner, _ := dial(t, server, nil)
	stranger, _ := dial(t, server, nil)

	// Given: a game created on the owner's connection
	response := send(t, owner, actionGameNew, Payload{})
	require.Equal(t, actionGameNew, response.Action, response.Payload.Error)
	gameID := response.Payload.Game.ID

	t.Run("Other players are refused", func(t *testing.T) {
		cell := 0
		for action, payload := range map[string]Payload{
			actionGameTurn:   {GameID: gameID, Cell: &cell},
			actionGameReset:  {GameID: gameID},
			actionGameDelete: {GameID: gameID},
		} {
			response := send(t, stranger, action, payload)

			assert.Equal(t, actionError, response.Action, action)
			assert.Equal(t, action, response.Payload.Request)
			assert.Contains(t, response.Payload.Error, "another player")
		}
	})

	t.Run("Owner deletes the game", func(t *testing.T) {
		response := send(t, owner, actionGameDelete, Payload{GameID: gameID})

		require.Equal(t, actionGameDelete, response.Action, response.Payload.Error)
		assert.Equal(t, gameID, response.Payload.GameID)

		response = send(t, owner, actionGameGet, Payload{GameID: gameID})
		assert.Equal(t, actionError, response.Action)
		assert.Contains(t, response.Payload.Error, "game not found")
	})
}

func TestServer_Markdown(t *testing.T) {
	conn, _ := dial(t, newTestServer(t), nil)

	response := send(t, conn, actionMarkdownRender, Payload{Source: "*hi*"})

	require.Equal(t, actionMarkdownRender, response.Action)
	assert.Equal(t, "html", response.Payload.Format)
	assert.Equal(t, "<p><em>hi</em></p>\n", response.Payload.Output)

	response = send(t, conn, actionMarkdownRender, Payload{Source: "*hi*", Format: "pdf"})

	assert.Equal(t, actionError, response.Action)
	assert.Contains(t, response.Payload.Error, "unknown output format")
}

func TestServer_BadMessages(t *testing.T) {
	conn, _ := dial(t, newTestServer(t), nil)

	t.Run("Unknown action", func(t *testing.T) {
		response := send(t, conn, "game:join", nil)

		assert.Equal(t, actionError, response.Action)
		assert.Equal(t, "game:join", response.Payload.Request)
		assert.Contains(t, response.Payload.Error, "unknown action")
	})

	t.Run("Malformed json keeps the connection open", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))

		response := receive(t, conn)
		assert.Equal(t, actionError, response.Action)
		assert.Contains(t, response.Payload.Error, "malformed message")

		response = send(t, conn, actionScoreGet, nil)
		assert.Equal(t, actionScoreGet, response.Action)
	})
}
