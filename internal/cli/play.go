package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/playground-backend/internal"
	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/repository"
	"github.com/rocketscienceinc/playground-backend/internal/service"
	"github.com/rocketscienceinc/playground-backend/internal/tictactoe"
)

const cliPlayerID = "cli"

func newPlayCommand(a *app) *cobra.Command {
	var (
		difficulty string
		playerID   string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play X against the bot in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if difficulty == "" {
				difficulty = a.conf.Game.DefaultDifficulty
			}

			level, err := entity.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}

			sqliteStorage, err := application.OpenScoreStorage(ctx, a.conf.SQLiteStoragePath)
			if err != nil {
				return err
			}
			defer sqliteStorage.Close()

			games := service.NewGameService(
				a.logger,
				repository.NewMemoryGameRepository(),
				repository.NewScoreRepository(sqliteStorage.Connection),
				service.NewBotService(a.logger, tictactoe.Strategies(nil)),
				level,
			)

			game, err := games.CreateGame(ctx, playerID, entity.WithBotType, level)
			if err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for game.IsPlaying() {
				fmt.Fprintln(out, renderBoard(game.Board))
				fmt.Fprint(out, "Your move (0-8, q to quit): ")

				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				input := strings.TrimSpace(scanner.Text())
				if input == "q" {
					return nil
				}

				cell, err := strconv.Atoi(input)
				if err != nil {
					fmt.Fprintln(out, "Enter a cell number from 0 to 8.")
					continue
				}

				next, err := games.MakeTurn(ctx, playerID, game.ID, cell)
				if errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrCellOccupied) {
					fmt.Fprintf(out, "Cell %d is not available.\n", cell)
					continue
				}
				if err != nil {
					return err
				}

				game = next
			}

			fmt.Fprintln(out, renderBoard(game.Board))
			fmt.Fprintln(out, resultLine(game))

			score, err := games.GetScore(ctx, playerID)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Score: you %d, bot %d, draws %d\n", score.Player, score.AI, score.Draws)

			return nil
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "bot difficulty: easy or hard (default from config)")
	cmd.Flags().StringVar(&playerID, "player", cliPlayerID, "player ID the score is kept under")

	return cmd
}

func resultLine(game *entity.Game) string {
	outcome, _ := game.Outcome()

	switch outcome {
	case entity.OutcomePlayerWin:
		return "You win!"
	case entity.OutcomeAIWin:
		return "The bot wins."
	default:
		return "Draw."
	}
}
