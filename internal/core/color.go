package core

// Color is the foreground color of a screen cell.
// The tui platform maps each value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// LaneColors cycles over note lanes so adjacent lanes are distinguishable.
var LaneColors = []Color{ColorCyan, ColorMagenta, ColorYellow, ColorGreen}

// LaneColor returns the color for a zero-based lane index.
func LaneColor(lane int) Color {
	if lane < 0 {
		return ColorDefault
	}
	return LaneColors[lane%len(LaneColors)]
}
