package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Terminal layout. Each board cell is CellWidth columns wide so the board
// looks square in a terminal.
const (
	CellWidth  = 2
	HUDHeight  = 1
	ViewWidth  = BoardSize*CellWidth + 2
	ViewHeight = HUDHeight + BoardSize + 2 + 1
)

// BoardRect returns the bordered board area on screen.
func BoardRect() core.Rect {
	return core.NewRect(0, HUDHeight, ViewWidth, BoardSize+2)
}

// Render draws the HUD, the bordered board and a status line into dst.
func (e *Engine) Render(dst *core.Screen) {
	dst.Clear()

	hud := fmt.Sprintf(" Snake  Score: %d  Best: %d  Speed: %d", e.score, e.highScore, e.CurrentTickInterval())
	dst.DrawText(0, 0, hud, core.ColorHUD)

	box := BoardRect()
	dst.DrawBox(box, core.ColorWall)

	put := func(c Cell, left, right rune, color core.Color) {
		x, y := ScreenCell(c)
		dst.SetColored(x, y, left, color)
		dst.SetColored(x+1, y, right, color)
	}

	if e.food != NoCell {
		put(e.food, '●', ' ', core.ColorFood)
	}
	last := len(e.snake) - 1
	for i, seg := range e.snake {
		if i == last {
			put(seg, '█', '█', core.ColorSnakeHead)
		} else {
			put(seg, '▓', '▓', core.ColorSnakeBody)
		}
	}

	var msg string
	switch e.status {
	case StatusIdle:
		msg = "Press SPACE or ENTER to start"
	case StatusOver:
		msg = fmt.Sprintf("Game over! Score %d. Press SPACE to play again", e.score)
	}
	if msg != "" {
		dst.DrawTextCentered(box, box.Bottom(), msg, core.ColorWhite)
	}
}

// ScreenCell converts a board cell to the screen position of its left column.
func ScreenCell(c Cell) (x, y int) {
	box := BoardRect()
	return box.X + 1 + c.X*CellWidth, box.Y + 1 + c.Y
}
