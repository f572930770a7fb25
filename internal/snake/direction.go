package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

var directionNames = map[Direction]string{
	DirRight: "right",
	DirDown:  "down",
	DirLeft:  "left",
	DirUp:    "up",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("snake: unknown direction %q", text)
	}
	*d = parsed
	return nil
}

// ParseDirection converts a name ("up", "down", "left", "right") into a Direction.
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return DirRight, false
}

// DirectionFromAction maps a directional input action to a Direction.
func DirectionFromAction(a core.Action) (Direction, bool) {
	switch a {
	case core.ActionUp:
		return DirUp, true
	case core.ActionDown:
		return DirDown, true
	case core.ActionLeft:
		return DirLeft, true
	case core.ActionRight:
		return DirRight, true
	}
	return DirRight, false
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// delta returns the unit step for the direction. Y grows downward.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Cell is a board coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NoCell marks the absence of food when the board is full.
var NoCell = Cell{X: -1, Y: -1}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// InBounds reports whether the cell lies on a BoardSize x BoardSize board.
func (c Cell) InBounds() bool {
	return c.X >= 0 && c.X < BoardSize && c.Y >= 0 && c.Y < BoardSize
}
