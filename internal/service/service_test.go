package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockScoreRepo struct {
	mock.Mock
}

func (that *mockScoreRepo) Record(ctx context.Context, playerID string, outcome entity.Outcome) error {
	args := that.Called(ctx, playerID, outcome)
	return args.Error(0)
}

func (that *mockScoreRepo) GetByPlayerID(ctx context.Context, playerID string) (*entity.Score, error) {
	args := that.Called(ctx, playerID)
	score, _ := args.Get(0).(*entity.Score)
	return score, args.Error(1)
}

// scriptedStrategy plays the given cells in order.
type scriptedStrategy struct {
	cells []int
}

func (that *scriptedStrategy) ChooseCell(_ entity.Board, _ entity.Mark) (int, error) {
	cell := that.cells[0]
	that.cells = that.cells[1:]
	return cell, nil
}
