package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/playground-backend/internal/entity"
)

const (
	actionGameNew        = "game:new"
	actionGameGet        = "game:get"
	actionGameTurn       = "game:turn"
	actionGameReset      = "game:reset"
	actionGameDelete     = "game:delete"
	actionScoreGet       = "score:get"
	actionMarkdownRender = "markdown:render"
	actionError          = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the fields of every client action; each handler reads the
// ones it needs.
type Payload struct {
	GameID     string `json:"game_id,omitempty"`
	Type       string `json:"type,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Cell       *int   `json:"cell,omitempty"`
	Source     string `json:"source,omitempty"`
	Format     string `json:"format,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}

type ResponsePayload struct {
	GameID string        `json:"game_id,omitempty"`
	Game   *entity.Game  `json:"game,omitempty"`
	Score  *entity.Score `json:"score,omitempty"`
	Format string        `json:"format,omitempty"`
	Output string        `json:"output,omitempty"`

	// Request and Error are only set on error replies.
	Request string `json:"request,omitempty"`
	Error   string `json:"error,omitempty"`
}
