package core

// Color is the foreground color of a screen cell. The zero value is the
// terminal's default color.
type Color uint8

// Colors used by the game renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorCyan
	ColorOrange
	ColorGray
	ColorPink
)

// ANSI returns the ANSI 256-color code for the color, or "" for the
// terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "9"
	case ColorGreen:
		return "2"
	case ColorCyan:
		return "6"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "240"
	case ColorPink:
		return "198"
	default:
		return ""
	}
}
