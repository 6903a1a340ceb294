package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/playground-backend/internal/apperror"
)

const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const (
	// WithBotType is a human playing X against the bot playing O.
	WithBotType = "bot"
	// LocalType is two humans taking turns on the same device.
	LocalType = "local"
)

type Game struct {
	ID         string     `json:"id"`
	PlayerID   string     `json:"player_id,omitempty"`
	Type       string     `json:"type"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Board      Board      `json:"board"`
	Turn       Mark       `json:"player_turn"`
	Winner     Mark       `json:"winner"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewGame(id, playerID, gameType string, difficulty Difficulty) *Game {
	game := &Game{
		ID:         id,
		PlayerID:   playerID,
		Type:       gameType,
		Difficulty: difficulty,
	}
	game.Reset()

	return game
}

func ValidateGameType(gameType string) error {
	switch gameType {
	case WithBotType, LocalType:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}
}

// Reset empties the board and hands the first move to X.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Winner = EmptyCell
	that.Status = StatusPlaying
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Winner(); {
	// one player wins
	case winner != EmptyCell:
		that.Winner = winner
		that.Status = StatusWon
		that.Turn = EmptyCell
	// tie
	case that.Board.IsDraw():
		that.Winner = EmptyCell
		that.Status = StatusDraw
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusPlaying
	}
}

func (that *Game) MakeTurn(playerMark Mark, cell int) error {
	if err := that.ConfirmPlayingState(); err != nil {
		return err
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.Turn = playerMark.Opponent()

	that.UpdateGameState()

	return nil
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) ConfirmPlayingState() error {
	switch {
	case that.IsPlaying():
		return nil
	case that.IsFinished():
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

// Result is a short label of a finished game: the winning mark or "draw".
func (that *Game) Result() string {
	switch that.Status {
	case StatusWon:
		return string(that.Winner)
	case StatusDraw:
		return StatusDraw
	default:
		return ""
	}
}
