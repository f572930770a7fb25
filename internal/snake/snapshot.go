package snake

// State is the scalar part of the engine state.
type State struct {
	Status    Status `json:"status"`
	Score     int    `json:"score"`
	HighScore int    `json:"high_score"`
	Interval  int    `json:"interval"`
}

// Snapshot is a read-only copy of the full engine state for renderers.
type Snapshot struct {
	State
	Board     int       `json:"board"`
	Tick      uint64    `json:"tick"`
	Snake     []Cell    `json:"snake"` // tail first, head last
	Head      Cell      `json:"head"`
	Food      Cell      `json:"food"`
	Direction Direction `json:"direction"`
}

// State returns the scalar state.
func (e *Engine) State() State {
	return State{
		Status:    e.status,
		Score:     e.score,
		HighScore: e.highScore,
		Interval:  e.CurrentTickInterval(),
	}
}

// Snapshot returns a copy of the full state. The snake slice is not shared
// with the engine.
func (e *Engine) Snapshot() Snapshot {
	body := make([]Cell, len(e.snake))
	copy(body, e.snake)

	return Snapshot{
		State:     e.State(),
		Board:     BoardSize,
		Tick:      e.ticks,
		Snake:     body,
		Head:      e.head(),
		Food:      e.food,
		Direction: e.direction,
	}
}
