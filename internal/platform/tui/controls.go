package tui

import (
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const (
	buttonW = 7
	buttonH = 3
)

// Button is an on-screen control that can be clicked or tapped.
type Button struct {
	Action core.Action
	Label  string
	Rect   core.Rect
}

// Controls is the direction pad drawn next to the board.
type Controls struct {
	buttons []Button
}

// NewControls lays out the direction pad to the right of the board.
func NewControls() Controls {
	board := snake.BoardRect()
	ox := board.Right() + 3
	oy := board.Y + (board.H-3*buttonH)/2

	return Controls{buttons: []Button{
		{Action: core.ActionUp, Label: "▲", Rect: core.NewRect(ox+buttonW, oy, buttonW, buttonH)},
		{Action: core.ActionLeft, Label: "◀", Rect: core.NewRect(ox, oy+buttonH, buttonW, buttonH)},
		{Action: core.ActionRight, Label: "▶", Rect: core.NewRect(ox+2*buttonW, oy+buttonH, buttonW, buttonH)},
		{Action: core.ActionDown, Label: "▼", Rect: core.NewRect(ox+buttonW, oy+2*buttonH, buttonW, buttonH)},
	}}
}

// Buttons returns the laid-out buttons.
func (c Controls) Buttons() []Button {
	return c.buttons
}

// HitTest returns the action of the button covering (x, y).
func (c Controls) HitTest(x, y int) (core.Action, bool) {
	for _, b := range c.buttons {
		if b.Rect.Contains(x, y) {
			return b.Action, true
		}
	}
	return core.ActionNone, false
}

// Render draws the pad. Buttons are dimmed while they have no effect.
func (c Controls) Render(dst *core.Screen, active bool) {
	color := core.ColorGray
	if active {
		color = core.ColorButton
	}
	for _, b := range c.buttons {
		dst.DrawBox(b.Rect, color)
		cx, cy := b.Rect.Center()
		dst.DrawText(cx, cy, b.Label, color)
	}
}
