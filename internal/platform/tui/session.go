package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/storage"
)

var _ Game = (*watersort.Game)(nil)

// SessionOptions configures a play session.
type SessionOptions struct {
	Config   config.WaterSortConfig
	Catalog  *levels.Catalog
	Store    *storage.Store // nil keeps progress in memory
	Player   string
	Logger   *log.Logger
	AudioOut io.Writer // Where the bell is rung; nil for silence
	Runtime  core.RuntimeConfig
	Theme    *Theme // nil uses DefaultTheme
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu -> game -> menu.
// It is the top-level model for both local and SSH play.
type SessionModel struct {
	opts       SessionOptions
	id         uuid.UUID
	logger     *log.Logger
	profile    *storage.Profile
	audio      *watersort.BellPlayer
	screen     sessionScreen
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session for one player.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Theme == nil {
		t := DefaultTheme()
		opts.Theme = &t
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}

	id := uuid.New()
	m := SessionModel{
		opts:   opts,
		id:     id,
		logger: opts.Logger.With("session", id.String(), "player", opts.Player),
	}

	settings := watersort.AudioSettings{Music: opts.Config.Audio.Music, SFX: opts.Config.Audio.SFX}
	if opts.Store != nil {
		m.profile = opts.Store.Profile(opts.Player)
		music, sfx, err := m.profile.AudioSettings(settings.Music, settings.SFX)
		if err != nil {
			m.logger.Warn("cannot read audio settings", "err", err)
		}
		settings = watersort.AudioSettings{Music: music, SFX: sfx}
	}
	m.audio = watersort.NewBellPlayer(opts.AudioOut, settings)
	m.menu = m.newMenu()
	return m
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.opts.Catalog, m.profile, m.audio, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH).
		WithTheme(*m.opts.Theme).
		WithLogger(m.logger)
}

// newGame creates a game opened at the given level.
func (m SessionModel) newGame(level int) *watersort.Game {
	return watersort.New(watersort.Options{
		Config:     m.opts.Config,
		Catalog:    m.opts.Catalog,
		Progress:   m.profile,
		Audio:      m.audio,
		Logger:     m.logger,
		StartLevel: level,
	})
}

// ID identifies the session in logs.
func (m SessionModel) ID() uuid.UUID {
	return m.id
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	m.logger.Debug("session started")
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Catalog, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.screen = screenScoreboard
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		level := m.menu.Selected().Index
		m.logger.Info("starting level", "index", level)
		gameModel := NewGameModel(m.newGame(level), m.opts.Runtime).WithPalette(m.opts.Theme.Palette)
		m.gameModel = &gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scoreboard.IsGoingBack() {
		m.screen = screenMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenScoreboard:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// RunSession runs the menu, game and scoreboard flow in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
