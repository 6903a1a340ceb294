package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/service"
)

var errCellRequired = errors.New("cell is required")

func (that *Server) handleNewGame(ctx context.Context, playerID string, payload *Payload) (*ResponsePayload, error) {
	gameType := payload.Type
	if gameType == "" {
		gameType = entity.WithBotType
	}

	game, err := that.games.CreateGame(ctx, playerID, gameType, entity.Difficulty(payload.Difficulty))
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleGetGame(ctx context.Context, _ string, payload *Payload) (*ResponsePayload, error) {
	game, err := that.games.GetGame(ctx, payload.GameID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleGameTurn(ctx context.Context, playerID string, payload *Payload) (*ResponsePayload, error) {
	if payload.Cell == nil {
		return nil, errCellRequired
	}

	game, err := that.games.MakeTurn(ctx, playerID, payload.GameID, *payload.Cell)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleResetGame(ctx context.Context, playerID string, payload *Payload) (*ResponsePayload, error) {
	game, err := that.games.ResetGame(ctx, playerID, payload.GameID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Game: game}, nil
}

func (that *Server) handleDeleteGame(ctx context.Context, playerID string, payload *Payload) (*ResponsePayload, error) {
	if err := that.games.DeleteGame(ctx, playerID, payload.GameID); err != nil {
		return nil, err
	}

	return &ResponsePayload{GameID: payload.GameID}, nil
}

func (that *Server) handleGetScore(ctx context.Context, playerID string, _ *Payload) (*ResponsePayload, error) {
	score, err := that.games.GetScore(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Score: score}, nil
}

func (that *Server) handleRenderMarkdown(ctx context.Context, _ string, payload *Payload) (*ResponsePayload, error) {
	format := payload.Format
	if format == "" {
		format = service.FormatHTML
	}

	output, err := that.markdown.Render(ctx, payload.Source, format)
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	return &ResponsePayload{Format: format, Output: output}, nil
}

// isClientError reports whether err was caused by the request and its text is
// safe to send back.
func isClientError(err error) bool {
	for _, target := range []error{
		errCellRequired,
		apperror.ErrGameNotFound,
		apperror.ErrNotYourGame,
		apperror.ErrGameConflict,
		apperror.ErrGameFinished,
		apperror.ErrNotYourTurn,
		apperror.ErrCellOccupied,
		apperror.ErrInvalidCell,
		apperror.ErrUnknownGameType,
		apperror.ErrUnknownDifficulty,
		apperror.ErrUnknownFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
