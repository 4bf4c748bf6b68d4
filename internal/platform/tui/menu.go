package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/storage"
)

// MenuItem is one level in the picker.
type MenuItem struct {
	Index  int
	ID     string
	Title  string
	Locked bool
	Best   int // Fewest moves, 0 if never solved
}

// MenuModel is the level picker. It shows which levels are unlocked and
// lets the player switch music and sound effects on or off.
type MenuModel struct {
	items        []MenuItem
	cursor       int
	scrollOffset int
	width        int
	height       int
	profile      *storage.Profile
	audio        *watersort.BellPlayer
	settings     watersort.AudioSettings
	logger       *log.Logger
	theme        Theme
	keyMapper    *KeyMapper
	status       string

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates a level picker over the catalog. profile and audio may be nil.
func NewMenuModel(catalog *levels.Catalog, profile *storage.Profile, audio *watersort.BellPlayer, width, height int) MenuModel {
	m := MenuModel{
		width:     width,
		height:    height,
		profile:   profile,
		audio:     audio,
		logger:    log.Default(),
		theme:     DefaultTheme(),
		keyMapper: NewKeyMapper(),
	}
	if audio != nil {
		m.settings = audio.Settings()
	}
	m.loadItems(catalog)

	// Start on the newest unlocked level
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].Locked {
			m.cursor = i
			break
		}
	}
	m.updateScroll()
	return m
}

// WithTheme sets the styles used by the picker.
func (m MenuModel) WithTheme(t Theme) MenuModel {
	m.theme = t
	return m
}

// WithLogger sets the logger used for persistence errors.
func (m MenuModel) WithLogger(logger *log.Logger) MenuModel {
	if logger != nil {
		m.logger = logger
	}
	return m
}

func (m *MenuModel) loadItems(catalog *levels.Catalog) {
	unlocked := 1
	if m.profile != nil {
		n, err := m.profile.UnlockedLevels()
		if err != nil {
			m.logger.Warn("cannot read unlocked levels", "err", err)
		}
		unlocked = n
	}

	lvls := catalog.Levels()
	m.items = make([]MenuItem, len(lvls))
	for i, lvl := range lvls {
		item := MenuItem{
			Index:  i,
			ID:     lvl.ID,
			Title:  lvl.Title(),
			Locked: i >= unlocked,
		}
		if m.profile != nil {
			best, err := m.profile.BestMoves(lvl.ID)
			if err != nil {
				m.logger.Warn("cannot read best result", "level", lvl.ID, "err", err)
			}
			item.Best = best
		}
		m.items[i] = item
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.Locked {
			m.status = fmt.Sprintf("Level %d is locked. Solve the previous level first.", item.Index+1)
			return m, nil
		}
		m.selected = &item

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionToggleMusic:
		m.settings.Music = !m.settings.Music
		m.saveAudio(storage.KeyMusicOn, m.settings.Music)

	case MenuActionToggleSFX:
		m.settings.SFX = !m.settings.SFX
		m.saveAudio(storage.KeySfxOn, m.settings.SFX)
	}

	return m, nil
}

func (m *MenuModel) saveAudio(key string, on bool) {
	if m.audio != nil {
		m.audio.SetSettings(m.settings)
		m.audio.Play(watersort.CueButton)
	}
	if m.profile == nil {
		return
	}
	if err := m.profile.SetBool(key, on); err != nil {
		m.logger.Warn("cannot save audio setting", "key", key, "err", err)
		m.status = "Could not save setting"
	}
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

func (m MenuModel) visibleItems() int {
	return max(m.height-12, 3)
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("W A T E R   S O R T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(m.theme.MenuItemLocked.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	audio := fmt.Sprintf("Music: %s  |  Sound: %s", onOff(m.settings.Music), onOff(m.settings.SFX))
	b.WriteString(centerText(m.theme.MenuDescription.Render(audio), m.width))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(centerText(m.theme.MenuStatus.Render(m.status), m.width))
	}
	b.WriteString("\n")

	controls := "Up/Down: Navigate  |  Enter: Play  |  M: Music  |  S: Sound  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int) string {
	item := m.items[i]

	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}

	line := fmt.Sprintf("%s%2d. %-20s", cursor, item.Index+1, item.Title)
	style := m.theme.MenuItemNormal
	switch {
	case item.Locked:
		line += "  locked"
		style = m.theme.MenuItemLocked
	case item.Best > 0:
		line += fmt.Sprintf("  best %d", item.Best)
		style = m.theme.MenuItemSolved
	}
	if i == m.cursor && !item.Locked {
		style = m.theme.MenuItemActive
	}
	return style.Render(line)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Selected returns the selected level, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Settings returns the audio switches as last toggled.
func (m MenuModel) Settings() watersort.AudioSettings {
	return m.settings
}

// Status returns the picker's status line.
func (m MenuModel) Status() string {
	return m.status
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
