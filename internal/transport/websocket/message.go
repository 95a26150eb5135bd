package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameTurn  = "game:turn"
	actionControl   = "game:control"
	actionGameReset = "game:reset"
	actionGameLeave = "game:leave"
	actionError     = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player   *entity.Player   `json:"player,omitempty"`
	Game     *entity.Game     `json:"game,omitempty"`
	Settings *entity.Settings `json:"settings,omitempty"`
	Cell     *int             `json:"cell,omitempty"`
	Mark     entity.Mark      `json:"mark,omitempty"`
	Control  entity.Control   `json:"control,omitempty"`
	Error    string           `json:"error,omitempty"`
}
