package entity

// Outcome is a finished bot game seen from the human player's side.
type Outcome string

const (
	OutcomePlayerWin Outcome = "player"
	OutcomeAIWin     Outcome = "ai"
	OutcomeDraw      Outcome = "draw"
)

// Score is the running tally of a player's games against the bot.
type Score struct {
	PlayerID string `json:"player_id"`
	Player   int    `json:"player"`
	AI       int    `json:"ai"`
	Draws    int    `json:"draws"`
}

// Outcome reports how a finished bot game ended for the human (X).
// ok is false for games that are still running or have no bot.
func (that *Game) Outcome() (Outcome, bool) {
	if !that.IsWithBot() {
		return "", false
	}

	switch {
	case that.Status == StatusDraw:
		return OutcomeDraw, true
	case that.Status == StatusWon && that.Winner == PlayerX:
		return OutcomePlayerWin, true
	case that.Status == StatusWon && that.Winner == PlayerO:
		return OutcomeAIWin, true
	default:
		return "", false
	}
}

func (that *Score) Add(outcome Outcome) {
	switch outcome {
	case OutcomePlayerWin:
		that.Player++
	case OutcomeAIWin:
		that.AI++
	case OutcomeDraw:
		that.Draws++
	}
}
