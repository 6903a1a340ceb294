package tictactoe

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

// Strategy picks the next cell for mark.
type Strategy interface {
	ChooseCell(board entity.Board, mark entity.Mark) (int, error)
}

type MinimaxStrategy struct{}

func (MinimaxStrategy) ChooseCell(board entity.Board, mark entity.Mark) (int, error) {
	return BestMoveFor(board, mark)
}

type RandomStrategy struct {
	intn func(n int) int
}

// NewRandomStrategy draws from rnd, or from the global source when rnd is nil.
// A *rand.Rand is not safe for concurrent use, so servers should pass nil.
func NewRandomStrategy(rnd *rand.Rand) *RandomStrategy {
	if rnd == nil {
		return &RandomStrategy{intn: rand.Intn} //nolint: gosec // it's ok
	}

	return &RandomStrategy{intn: rnd.Intn}
}

func (that *RandomStrategy) ChooseCell(board entity.Board, mark entity.Mark) (int, error) {
	if !mark.IsPlayer() {
		return -1, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.Winner() != entity.EmptyCell {
		return -1, apperror.ErrNoAvailableMoves
	}

	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return -1, apperror.ErrNoAvailableMoves
	}

	return availableCells[that.intn(len(availableCells))], nil
}

// Strategies maps every difficulty to the strategy that plays it.
func Strategies(rnd *rand.Rand) map[entity.Difficulty]Strategy {
	return map[entity.Difficulty]Strategy{
		entity.DifficultyEasy: NewRandomStrategy(rnd),
		entity.DifficultyHard: MinimaxStrategy{},
	}
}
