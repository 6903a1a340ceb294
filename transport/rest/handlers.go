package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/service"
	"github.com/rocketscienceinc/playground-backend/pkg/httpserver"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("malformed request body")

type renderRequest struct {
	Source string `json:"source"`
	Format string `json:"format"`
}

type renderResponse struct {
	Format string `json:"format"`
	Output string `json:"output"`
}

type createGameRequest struct {
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
}

type turnRequest struct {
	Cell *int `json:"cell"`
}

type hintRequest struct {
	Board string `json:"board"`
	Mark  string `json:"mark"`
}

type hintResponse struct {
	Cell int `json:"cell"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) renderMarkdown(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, "renderMarkdown", err)
		return
	}

	if req.Format == "" {
		req.Format = service.FormatHTML
	}

	output, err := that.markdown.Render(r.Context(), req.Source, req.Format)
	if err != nil {
		that.writeError(w, "renderMarkdown", err)
		return
	}

	that.writeJSON(w, http.StatusOK, renderResponse{Format: req.Format, Output: output})
}

func (that *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, "createGame", err)
		return
	}

	if req.Type == "" {
		req.Type = entity.WithBotType
	}

	game, err := that.games.CreateGame(r.Context(), player(w, r), req.Type, entity.Difficulty(req.Difficulty))
	if err != nil {
		that.writeError(w, "createGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *Server) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	if req.Cell == nil {
		that.writeError(w, "makeTurn", fmt.Errorf("%w: cell is required", errBadRequest))
		return
	}

	game, err := that.games.MakeTurn(r.Context(), player(w, r), r.PathValue("id"), *req.Cell)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) resetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.ResetGame(r.Context(), player(w, r), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "resetGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), player(w, r), r.PathValue("id")); err != nil {
		that.writeError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Server) getScore(w http.ResponseWriter, r *http.Request) {
	score, err := that.games.GetScore(r.Context(), player(w, r))
	if err != nil {
		that.writeError(w, "getScore", err)
		return
	}

	that.writeJSON(w, http.StatusOK, score)
}

func (that *Server) hint(w http.ResponseWriter, r *http.Request) {
	var req hintRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, "hint", err)
		return
	}

	board, err := entity.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, "hint", err)
		return
	}

	mark := entity.PlayerO
	if req.Mark != "" {
		if mark, err = entity.ParseMark(req.Mark); err != nil {
			that.writeError(w, "hint", err)
			return
		}
	}

	cell, err := that.games.Hint(board, mark)
	if err != nil {
		that.writeError(w, "hint", err)
		return
	}

	that.writeJSON(w, http.StatusOK, hintResponse{Cell: cell})
}

// player returns the caller's id, issuing the cookie on first contact.
func player(w http.ResponseWriter, r *http.Request) string {
	playerID, cookie := httpserver.PlayerID(r)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}

	return playerID
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		message = http.StatusText(status)
	}

	that.writeJSON(w, status, errorResponse{Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrNotYourGame):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameConflict):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrInvalidBoardString),
		errors.Is(err, apperror.ErrNoAvailableMoves),
		errors.Is(err, apperror.ErrUnknownGameType),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrUnknownFormat):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
