package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arcade/internal/entity"
)

// Message actions. field:frame and error only travel from the server.
const (
	ActionGameState    = "game:state"
	ActionGamePlay     = "game:play"
	ActionGameReset    = "game:reset"
	ActionGameNew      = "game:new"
	ActionGameMode     = "game:mode"
	ActionFieldResize  = "field:resize"
	ActionFieldPointer = "field:pointer"
	ActionFieldFrame   = "field:frame"
	ActionError        = "error"
)

type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type PlayPayload struct {
	Cell *int `json:"cell"`
}

type ModePayload struct {
	Mode entity.Mode `json:"mode"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

func encodeMessage(action string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	data, err := json.Marshal(Message{Action: action, Payload: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return data, nil
}
