package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for scene elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// bodyPalette is the rotation used to tell dynamic bodies apart.
var bodyPalette = []Color{
	ColorCyan,
	ColorGreen,
	ColorYellow,
	ColorMagenta,
	ColorBlue,
	ColorOrange,
	ColorBrightCyan,
	ColorBrightGreen,
}

// BodyColor picks a stable palette color for a body id.
// Non-positive ids get the default color.
func BodyColor(id int) Color {
	if id <= 0 {
		return ColorDefault
	}
	return bodyPalette[(id-1)%len(bodyPalette)]
}
