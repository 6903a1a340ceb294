package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/pkg/httpserver"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1 << 20
)

type gameService interface {
	CreateGame(ctx context.Context, playerID, gameType string, difficulty entity.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, playerID, gameID string) error

	GetScore(ctx context.Context, playerID string) (*entity.Score, error)
}

type markdownService interface {
	Render(ctx context.Context, source, format string) (string, error)
}

type handlerFunc func(ctx context.Context, playerID string, payload *Payload) (*ResponsePayload, error)

type Server struct {
	logger   *slog.Logger
	games    gameService
	markdown markdownService
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameService, markdown markdownService) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		games:    games,
		markdown: markdown,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionGameNew] = server.handleNewGame
	server.handlers[actionGameGet] = server.handleGetGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameReset] = server.handleResetGame
	server.handlers[actionGameDelete] = server.handleDeleteGame
	server.handlers[actionScoreGet] = server.handleGetScore
	server.handlers[actionMarkdownRender] = server.handleRenderMarkdown

	return server
}

// Start - starts WebSocket server. Open connections are closed once ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := httpserver.New(port, that.Handler())
	srv.BaseContext = func(net.Listener) context.Context { return ctx }

	return httpserver.Run(ctx, srv)
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", httpserver.Ping)
	mux.HandleFunc("GET /ws", that.upgradeToWebSocket)

	return mux
}

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it
// until the client leaves.
func (that *Server) upgradeToWebSocket(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	playerID, cookie := httpserver.PlayerID(r)

	header := http.Header{}
	if cookie != nil {
		header.Add("Set-Cookie", cookie.String())
	}

	conn, err := that.upgrader.Upgrade(w, r, header)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Warn("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log.Info("WebSocket connection established", "player_id", playerID)

	if err = that.handleMessages(ctx, conn, playerID); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, playerID string) error {
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) &&
				ctx.Err() == nil {
				return fmt.Errorf("failed to read message: %w", err)
			}
			return nil
		}

		response := that.dispatch(ctx, playerID, data)

		if err = conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return fmt.Errorf("failed to set write deadline: %w", err)
		}

		if err = conn.WriteJSON(response); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}
}

func (that *Server) dispatch(ctx context.Context, playerID string, data []byte) *Response {
	log := that.logger.With("method", "dispatch", "player_id", playerID)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return errorResponse("", fmt.Errorf("%w: %w", errBadMessage, err))
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return errorResponse(message.Action, fmt.Errorf("%w: %q", errUnknownAction, message.Action))
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return errorResponse(message.Action, fmt.Errorf("%w: %w", errBadMessage, err))
		}
	}

	responsePayload, err := handler(ctx, playerID, &payload)
	if err != nil {
		if !isClientError(err) {
			log.Error("error processing message", "action", message.Action, "error", err)
			err = errInternal
		}
		return errorResponse(message.Action, err)
	}

	return &Response{Action: message.Action, Payload: *responsePayload}
}

func errorResponse(request string, err error) *Response {
	return &Response{
		Action: actionError,
		Payload: ResponsePayload{
			Request: request,
			Error:   err.Error(),
		},
	}
}

var (
	errBadMessage    = errors.New("malformed message")
	errUnknownAction = errors.New("unknown action")
	errInternal      = errors.New("internal error")
)
