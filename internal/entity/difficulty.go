package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
)

// Difficulty selects how the bot chooses its moves.
type Difficulty string

const (
	// DifficultyEasy plays a random free cell.
	DifficultyEasy Difficulty = "easy"
	// DifficultyHard plays the minimax move and never loses.
	DifficultyHard Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, s)
	}
}
