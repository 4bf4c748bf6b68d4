package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/watersort/internal/core"
)

// Palette maps screen colors to terminal styles.
type Palette map[core.Color]lipgloss.Style

// ansiCodes are the terminal colors behind the default palette.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "205",
	core.ColorBrown:         "130",
	core.ColorPurple:        "135",
	core.ColorTeal:          "30",
	core.ColorDarkGray:      "238",
}

// DefaultPalette returns the 256-color palette.
func DefaultPalette() Palette {
	p := Palette{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range ansiCodes {
		p[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

// MonochromePalette drops color. Highlights stay visible in bold and
// the dark grays used for empty space are faint.
func MonochromePalette() Palette {
	p := make(Palette, core.NumColors)
	for c := core.ColorDefault; c < core.NumColors; c++ {
		style := lipgloss.NewStyle()
		switch {
		case c.Bright():
			style = style.Bold(true)
		case c == core.ColorDarkGray:
			style = style.Faint(true)
		}
		p[c] = style
	}
	return p
}

var defaultPalette = DefaultPalette()

// RenderScreen converts a Screen buffer to a styled string using the default palette.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same color share one styled run; colors
// missing from the palette render unstyled.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}

		for x := 0; x < s.Width(); {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.style(color).Render(run.String()))
		}
	}
	return sb.String()
}

func (p Palette) style(c core.Color) lipgloss.Style {
	if style, ok := p[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
