package core

import "strings"

// Action represents a semantic game action, abstracted from physical input.
// Keyboard, pointer and websocket front ends all translate to Actions so the
// engine never sees raw key codes.
type Action int

const (
	ActionNone           Action = iota
	ActionUp                    // W, Up arrow, touch up
	ActionDown                  // S, Down arrow, touch down
	ActionLeft                  // A, Left arrow, touch left
	ActionRight                 // D, Right arrow, touch right
	ActionStart                 // Space, Enter
	ActionEndGame               // X - forfeit the current run
	ActionResetHighScore        // Ctrl+R - clear the stored best score
	ActionQuit                  // Q, Ctrl+C - leave the session
)

var actionNames = map[Action]string{
	ActionNone:           "none",
	ActionUp:             "up",
	ActionDown:           "down",
	ActionLeft:           "left",
	ActionRight:          "right",
	ActionStart:          "start",
	ActionEndGame:        "end",
	ActionResetHighScore: "reset_high",
	ActionQuit:           "quit",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsDirection reports whether the action requests a direction change.
func (a Action) IsDirection() bool {
	return a == ActionUp || a == ActionDown || a == ActionLeft || a == ActionRight
}

// ParseAction converts a wire name back to an Action.
// Unknown names yield ActionNone and false.
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if a != ActionNone && name == s {
			return a, true
		}
	}
	return ActionNone, false
}
