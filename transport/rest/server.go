package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/pkg/httpserver"
)

type gameService interface {
	CreateGame(ctx context.Context, playerID, gameType string, difficulty entity.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, playerID, gameID string) error

	GetScore(ctx context.Context, playerID string) (*entity.Score, error)
	Hint(board entity.Board, mark entity.Mark) (int, error)
}

type markdownService interface {
	Render(ctx context.Context, source, format string) (string, error)
}

type Server struct {
	logger   *slog.Logger
	games    gameService
	markdown markdownService
}

func New(logger *slog.Logger, games gameService, markdown markdownService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		games:    games,
		markdown: markdown,
	}
}

// Start serves the REST API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	return httpserver.Run(ctx, httpserver.New(port, that.Handler()))
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", httpserver.Ping)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/markdown/render", that.renderMarkdown)

	mux.HandleFunc("POST /api/games", that.createGame)
	mux.HandleFunc("GET /api/games/{id}", that.getGame)
	mux.HandleFunc("POST /api/games/{id}/turns", that.makeTurn)
	mux.HandleFunc("POST /api/games/{id}/reset", that.resetGame)
	mux.HandleFunc("DELETE /api/games/{id}", that.deleteGame)
	mux.HandleFunc("GET /api/score", that.getScore)
	mux.HandleFunc("POST /api/hints", that.hint)

	return mux
}
