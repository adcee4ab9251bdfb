package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors. Piece colors follow the usual guideline palette.
const (
	ColorDefault Color = iota
	ColorCyan
	ColorBlue
	ColorOrange
	ColorYellow
	ColorGreen
	ColorMagenta
	ColorRed
	ColorWhite
	ColorGray
	ColorDim
	ColorBrightBlue
)
