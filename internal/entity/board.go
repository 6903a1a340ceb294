package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
)

// Mark is the content of a single cell, and doubles as the player identifier.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const BoardSize = 9

// WinCombos lists every line that wins the game: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid stored row by row.
type Board [BoardSize]Mark

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark. The empty mark has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// ParseMark accepts "X" or "O" in any case.
func ParseMark(s string) (Mark, error) {
	mark := Mark(strings.ToUpper(strings.TrimSpace(s)))
	if !mark.IsPlayer() {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
	return mark, nil
}

// ParseBoard reads a 9 character board. X and O are marks, '.', '-', '_'
// and ' ' are empty cells.
func ParseBoard(s string) (Board, error) {
	var board Board

	if len(s) != BoardSize {
		return board, fmt.Errorf("%w: want %d cells, got %d", apperror.ErrInvalidBoardString, BoardSize, len(s))
	}

	for i := range len(s) {
		switch s[i] {
		case 'X', 'x':
			board[i] = PlayerX
		case 'O', 'o':
			board[i] = PlayerO
		case '.', '-', '_', ' ':
			board[i] = EmptyCell
		default:
			return board, fmt.Errorf("%w: unexpected %q at %d", apperror.ErrInvalidBoardString, s[i], i)
		}
	}

	return board, nil
}

// Winner returns the mark owning a complete line, or EmptyCell.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// IsDraw reports a full board without a winning line. A full board with a
// winning line is a win, never a draw.
func (that Board) IsDraw() bool {
	return that.IsFull() && that.Winner() == EmptyCell
}

func (that Board) IsTerminal() bool {
	return that.Winner() != EmptyCell || that.IsFull()
}

// EmptyCells returns the indexes of free cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) String() string {
	var sb strings.Builder
	for _, cell := range that {
		if cell == EmptyCell {
			sb.WriteByte('.')
			continue
		}
		sb.WriteString(string(cell))
	}

	return sb.String()
}
