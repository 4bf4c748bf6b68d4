package core

import "strings"

// Color is the color of one liquid layer.
// ColorNone marks an unused slot and never appears inside a bottle.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorPink
	ColorCyan
	ColorBrown
	ColorGray
	ColorLime
	ColorTeal
	ColorCount // Sentinel value for iteration
)

var colorNames = [ColorCount]string{
	ColorNone:   "none",
	ColorRed:    "red",
	ColorOrange: "orange",
	ColorYellow: "yellow",
	ColorGreen:  "green",
	ColorBlue:   "blue",
	ColorPurple: "purple",
	ColorPink:   "pink",
	ColorCyan:   "cyan",
	ColorBrown:  "brown",
	ColorGray:   "gray",
	ColorLime:   "lime",
	ColorTeal:   "teal",
}

// Single-letter codes used by the ASCII renderer and position keys.
const colorChars = ".ROYGBPKCNALT"

// String returns the lowercase name of the color.
func (c Color) String() string {
	if c >= ColorCount {
		return "unknown"
	}
	return colorNames[c]
}

// Char returns a single character representation of the color.
func (c Color) Char() rune {
	if c >= ColorCount {
		return '?'
	}
	return rune(colorChars[c])
}

// Valid reports whether c is a real liquid color.
func (c Color) Valid() bool {
	return c > ColorNone && c < ColorCount
}

// ParseColor converts a color name or its single-letter code to a Color.
// Returns ColorNone and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "grey" {
		return ColorGray, true
	}
	for c := ColorRed; c < ColorCount; c++ {
		if s == colorNames[c] {
			return c, true
		}
		if len(s) == 1 && strings.ToLower(string(colorChars[c])) == s {
			return c, true
		}
	}
	return ColorNone, false
}

// AllColors returns every liquid color in declaration order.
func AllColors() []Color {
	colors := make([]Color, 0, ColorCount-1)
	for c := ColorRed; c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}
