package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the board renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorBrightGreen
	ColorRed
	ColorYellow
	ColorCyan
	ColorGray
	ColorWhite
)

// Semantic aliases for board elements.
const (
	ColorSnakeHead = ColorBrightGreen
	ColorSnakeBody = ColorGreen
	ColorFood      = ColorRed
	ColorWall      = ColorGray
	ColorHUD       = ColorCyan
	ColorButton    = ColorYellow
)
