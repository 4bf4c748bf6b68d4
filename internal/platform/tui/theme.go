package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the menu and scoreboard screens and the
// palette the board is drawn with.
type Theme struct {
	// Level picker
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuStatus      lipgloss.Style

	// Shared
	Controls  lipgloss.Style
	Border    lipgloss.Color
	Accent    lipgloss.Color
	Highlight lipgloss.Color

	// Game screen
	Palette Palette
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuItemSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MenuStatus:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),

		Controls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Border:    lipgloss.Color("240"),
		Accent:    lipgloss.Color("229"),
		Highlight: lipgloss.Color("57"),

		Palette: DefaultPalette(),
	}
}

// MonochromeTheme returns a grayscale theme for terminals with few colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.MenuItemSolved = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.MenuStatus = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.Accent = lipgloss.Color("255")
	theme.Highlight = lipgloss.Color("238")
	theme.Palette = MonochromePalette()
	return theme
}

// ThemeByName returns a theme by name.
func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return DefaultTheme(), nil
	case "mono", "monochrome":
		return MonochromeTheme(), nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (want default or mono)", name)
	}
}
