package web

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Message types.
const (
	msgStart     = "start"
	msgEnd       = "end"
	msgResetHigh = "reset_high"
	msgDir       = "dir"
	msgState     = "state"
	msgError     = "error"
)

// ClientMessage is sent by the browser.
type ClientMessage struct {
	Type string `json:"type"`
	Dir  string `json:"dir,omitempty"`
}

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type  string          `json:"type"`
	State *snake.Snapshot `json:"state,omitempty"`
	Error string          `json:"error,omitempty"`
}

// parseClientMessage decodes a browser message into an engine action.
func parseClientMessage(data []byte) (core.Action, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return core.ActionNone, fmt.Errorf("invalid message: %w", err)
	}

	switch msg.Type {
	case msgStart:
		return core.ActionStart, nil
	case msgEnd:
		return core.ActionEndGame, nil
	case msgResetHigh:
		return core.ActionResetHighScore, nil
	case msgDir:
		a, ok := core.ParseAction(msg.Dir)
		if !ok || !a.IsDirection() {
			return core.ActionNone, fmt.Errorf("unknown direction %q", msg.Dir)
		}
		return a, nil
	}
	return core.ActionNone, fmt.Errorf("unknown message type %q", msg.Type)
}

func encodeState(s snake.Snapshot) ([]byte, error) {
	return json.Marshal(ServerMessage{Type: msgState, State: &s})
}

func encodeError(err error) []byte {
	data, _ := json.Marshal(ServerMessage{Type: msgError, Error: err.Error()})
	return data
}
