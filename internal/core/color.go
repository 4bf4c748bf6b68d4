package core

// Color is the foreground color of a screen cell.
// The platform maps each value to a terminal color when rendering.
type Color uint8

// Screen colors available to games.
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
	ColorPink
	ColorBrown
	ColorPurple
	ColorTeal
	ColorDarkGray
	NumColors // Sentinel value for iteration
)

var screenColorNames = [NumColors]string{
	ColorDefault:       "default",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightRed:     "bright-red",
	ColorBrightGreen:   "bright-green",
	ColorBrightYellow:  "bright-yellow",
	ColorBrightBlue:    "bright-blue",
	ColorBrightMagenta: "bright-magenta",
	ColorBrightCyan:    "bright-cyan",
	ColorBrightWhite:   "bright-white",
	ColorOrange:        "orange",
	ColorGray:          "gray",
	ColorPink:          "pink",
	ColorBrown:         "brown",
	ColorPurple:        "purple",
	ColorTeal:          "teal",
	ColorDarkGray:      "dark-gray",
}

// String returns the color name.
func (c Color) String() string {
	if c >= NumColors {
		return "unknown"
	}
	return screenColorNames[c]
}

// Bright reports whether c is one of the emphasis colors games use for
// highlights. Palettes without color render them bold.
func (c Color) Bright() bool {
	return c >= ColorBrightRed && c <= ColorBrightWhite
}
