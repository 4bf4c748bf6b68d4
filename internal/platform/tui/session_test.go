package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
)

func sendSession(t *testing.T, m SessionModel, msgs ...tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		if m, ok = next.(SessionModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

func testSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(SessionOptions{
		Catalog: testCatalog(3),
		Store:   openTestStore(t),
		Player:  "alice",
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30},
	})
}

func TestSessionMenuToGameAndBack(t *testing.T) {
	m := testSession(t)
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}

	m, cmd := sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if cmd == nil {
		t.Error("entering a game should start the tick loop")
	}

	// Ticks from the game reach the game model.
	m, _ = sendSession(t, m, TickMsg{Gen: m.gameModel.gen})
	if got := m.gameModel.State().Level; got != 1 {
		t.Errorf("Level = %d, want 1", got)
	}

	m, _ = sendSession(t, m, runeKey("b"))
	if m.screen != screenMenu || m.gameModel != nil {
		t.Fatalf("screen = %v, want menu after back", m.screen)
	}
	if m.quitting {
		t.Error("back should not quit the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := testSession(t)

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}

	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.menu.WantsScoreboard() {
		t.Error("returning should give a fresh menu")
	}
}

func TestSessionQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.Msg
	}{
		{"from menu", []tea.Msg{runeKey("q")}},
		{"from game", []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}, runeKey("q")}},
		{"from scoreboard", []tea.Msg{tea.KeyMsg{Type: tea.KeyTab}, runeKey("q")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := sendSession(t, testSession(t), tt.keys...)
			if !m.quitting {
				t.Error("session should be quitting")
			}
			if cmd == nil {
				t.Error("quitting should return tea.Quit")
			}
			if m.View() != "" {
				t.Error("View() should be empty after quitting")
			}
		})
	}
}

func TestSessionPlayerDefaults(t *testing.T) {
	m := NewSessionModel(SessionOptions{Catalog: testCatalog(1)})
	if m.opts.Player == "" {
		t.Error("empty player should get the default name")
	}
	if m.profile != nil {
		t.Error("no store should mean no profile")
	}
	if m.opts.Runtime.TickRate <= 0 {
		t.Error("tick rate should default")
	}

	// The game still opens without persistence.
	m, _ = sendSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
}

func TestSessionResizeReachesMenu(t *testing.T) {
	m := testSession(t)
	m, _ = sendSession(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.opts.Runtime.ScreenW != 120 || m.menu.width != 120 {
		t.Errorf("resize not applied: runtime %d, menu %d", m.opts.Runtime.ScreenW, m.menu.width)
	}
}
