package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/metrics"
	"github.com/rocketscienceinc/playground-backend/internal/tictactoe"
)

type BotService interface {
	// MakeTurn places the mark whose turn it is, chosen by the game's difficulty.
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger     *slog.Logger
	strategies map[entity.Difficulty]tictactoe.Strategy
}

func NewBotService(logger *slog.Logger, strategies map[entity.Difficulty]tictactoe.Strategy) BotService {
	return &botService{
		logger:     logger,
		strategies: strategies,
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	log := that.logger.With("method", "MakeTurn", "game_id", game.ID)

	strategy, ok := that.strategies[game.Difficulty]
	if !ok {
		return fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, game.Difficulty)
	}

	start := time.Now()
	cell, err := strategy.ChooseCell(game.Board, game.Turn)
	metrics.BotMoveDuration.WithLabelValues(string(game.Difficulty)).Observe(time.Since(start).Seconds())

	if err != nil {
		return fmt.Errorf("bot failed to choose cell: %w", err)
	}

	if err = game.MakeTurn(game.Turn, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("Bot made turn", "cell", cell, "difficulty", game.Difficulty)

	return nil
}
