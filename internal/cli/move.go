package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/tictactoe"
)

func newMoveCommand(_ *app) *cobra.Command {
	var (
		mark string
		show bool
	)

	cmd := &cobra.Command{
		Use:   "move <board>",
		Short: "Print the best cell for a 9 character board such as XX.O.....",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := entity.ParseBoard(args[0])
			if err != nil {
				return err
			}

			playerMark, err := entity.ParseMark(mark)
			if err != nil {
				return err
			}

			cell, err := tictactoe.BestMoveFor(board, playerMark)
			if err != nil {
				return err
			}

			if show {
				board[cell] = playerMark
				if _, err = fmt.Fprintln(cmd.OutOrStdout(), renderBoard(board)); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cell)
			return err
		},
	}

	cmd.Flags().StringVarP(&mark, "mark", "m", string(entity.PlayerO), "mark to move: X or O")
	cmd.Flags().BoolVar(&show, "show", false, "also draw the board with the move played")

	return cmd
}
