package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/metrics"
	"github.com/rocketscienceinc/playground-backend/internal/repository"
	"github.com/rocketscienceinc/playground-backend/internal/tictactoe"
)

type GameService interface {
	CreateGame(ctx context.Context, playerID, gameType string, difficulty entity.Difficulty) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID, gameID string, cell int) (*entity.Game, error)
	ResetGame(ctx context.Context, playerID, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, playerID, gameID string) error

	GetScore(ctx context.Context, playerID string) (*entity.Score, error)
	Hint(board entity.Board, mark entity.Mark) (int, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Update(ctx context.Context, id string, fn repository.UpdateFunc) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type scoreRepo interface {
	Record(ctx context.Context, playerID string, outcome entity.Outcome) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.Score, error)
}

type gameService struct {
	logger            *slog.Logger
	gameRepo          gameRepo
	scoreRepo         scoreRepo
	botService        BotService
	defaultDifficulty entity.Difficulty
	now               func() time.Time
}

func NewGameService(
	logger *slog.Logger,
	gameRepo gameRepo,
	scoreRepo scoreRepo,
	botService BotService,
	defaultDifficulty entity.Difficulty,
) GameService {
	return &gameService{
		logger:            logger.With("component", "game_service"),
		gameRepo:          gameRepo,
		scoreRepo:         scoreRepo,
		botService:        botService,
		defaultDifficulty: defaultDifficulty,
		now:               time.Now,
	}
}

// CreateGame starts a game with X to move. Bot games without a difficulty use
// the configured default; local games ignore difficulty.
func (that *gameService) CreateGame(
	ctx context.Context,
	playerID, gameType string,
	difficulty entity.Difficulty,
) (*entity.Game, error) {
	if err := entity.ValidateGameType(gameType); err != nil {
		return nil, err
	}

	if gameType == entity.WithBotType {
		if difficulty == "" {
			difficulty = that.defaultDifficulty
		}

		if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
			return nil, err
		}
	} else {
		difficulty = ""
	}

	game := entity.NewGame(uuid.NewString(), playerID, gameType, difficulty)
	game.CreatedAt = that.now().UTC()
	game.UpdatedAt = game.CreatedAt
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	metrics.GamesStarted.WithLabelValues(gameType).Inc()
	that.logger.Debug("Game created", "game_id", game.ID, "type", gameType, "difficulty", difficulty)

	return game, nil
}

func (that *gameService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

// MakeTurn places the mark whose turn it is. In bot games the caller always
// plays X and the bot answers as O within the same update.
func (that *gameService) MakeTurn(ctx context.Context, playerID, gameID string, cell int) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if err := checkOwner(game, playerID); err != nil {
			return err
		}

		mark := game.Turn
		if game.IsWithBot() {
			mark = entity.PlayerX
		}

		if err := game.MakeTurn(mark, cell); err != nil {
			return err
		}

		if game.IsWithBot() && game.IsPlaying() {
			if err := that.botService.MakeTurn(game); err != nil {
				return err
			}
		}

		game.UpdatedAt = that.now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
	}

	return game, nil
}

func (that *gameService) ResetGame(ctx context.Context, playerID, gameID string) (*entity.Game, error) {
	game, err := that.gameRepo.Update(ctx, gameID, func(game *entity.Game) error {
		if err := checkOwner(game, playerID); err != nil {
			return err
		}

		game.Reset()
		game.UpdatedAt = that.now().UTC()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	metrics.GamesStarted.WithLabelValues(game.Type).Inc()

	return game, nil
}

// DeleteGame removes a game for good. The owner never changes after creation,
// so checking it before the delete is enough.
func (that *gameService) DeleteGame(ctx context.Context, playerID, gameID string) error {
	game, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	if err = checkOwner(game, playerID); err != nil {
		return err
	}

	if err = that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Debug("Game deleted", "game_id", gameID)

	return nil
}

func (that *gameService) GetScore(ctx context.Context, playerID string) (*entity.Score, error) {
	score, err := that.scoreRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return score, nil
}

// Hint suggests the optimal cell for mark on an arbitrary board.
func (that *gameService) Hint(board entity.Board, mark entity.Mark) (int, error) {
	if !mark.IsPlayer() {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	cell, err := tictactoe.BestMoveFor(board, mark)
	if err != nil {
		return 0, fmt.Errorf("failed to find hint: %w", err)
	}

	return cell, nil
}

// checkOwner rejects changes to a game created by another player. Games
// created without a player are open to everyone.
func checkOwner(game *entity.Game, playerID string) error {
	if game.PlayerID != "" && game.PlayerID != playerID {
		return fmt.Errorf("%w: game %s", apperror.ErrNotYourGame, game.ID)
	}

	return nil
}

// finishGame runs once per game round: only the update that ends the round
// sees a playing game turn into a finished one.
func (that *gameService) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "game_id", game.ID)

	metrics.GamesFinished.WithLabelValues(game.Result()).Inc()

	outcome, ok := game.Outcome()
	if !ok || game.PlayerID == "" {
		return
	}

	if err := that.scoreRepo.Record(ctx, game.PlayerID, outcome); err != nil {
		log.Error("could not record score", "error", err)
		return
	}

	log.Info("Game finished", "result", game.Result(), "outcome", outcome)
}
