package tictactoe

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

// winScore is the value of an immediate win; every extra ply costs one point
// so that faster wins and slower losses are preferred.
const winScore = 10

// BestMove returns the cell O should play on the board.
func BestMove(board entity.Board) (int, error) {
	return BestMoveFor(board, entity.PlayerO)
}

// BestMoveFor runs an exhaustive minimax search for mark. Cells are tried in
// ascending order and the first one with the best score wins ties.
func BestMoveFor(board entity.Board, mark entity.Mark) (int, error) {
	if !mark.IsPlayer() {
		return -1, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.IsTerminal() {
		return -1, apperror.ErrNoAvailableMoves
	}

	bestCell, bestScore := -1, math.MinInt
	for _, cell := range board.EmptyCells() {
		board[cell] = mark
		score := minimax(board, 0, false, mark)
		board[cell] = entity.EmptyCell

		if score > bestScore {
			bestCell, bestScore = cell, score
		}
	}

	return bestCell, nil
}

func minimax(board entity.Board, depth int, maximizing bool, me entity.Mark) int {
	switch board.Winner() {
	case me:
		return winScore - depth
	case me.Opponent():
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	mover, best := me, math.MinInt
	if !maximizing {
		mover, best = me.Opponent(), math.MaxInt
	}

	for _, cell := range board.EmptyCells() {
		board[cell] = mover
		score := minimax(board, depth+1, !maximizing, me)
		board[cell] = entity.EmptyCell

		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}

	return best
}
