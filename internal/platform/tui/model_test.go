package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort"
)

func newTestGameModel(t *testing.T) GameModel {
	t.Helper()
	game := watersort.New(watersort.Options{Catalog: testCatalog(2)})
	m := NewGameModel(game, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	if m.Init() == nil {
		t.Fatal("Init() should start the tick loop")
	}
	return m
}

func sendGame(t *testing.T, m GameModel, msgs ...tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		if m, ok = next.(GameModel); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m, cmd
}

func TestGameModelTicks(t *testing.T) {
	m := newTestGameModel(t)

	m, cmd := sendGame(t, m, TickMsg{Gen: m.gen + 1000})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	if m.State().Level != 0 {
		t.Error("stale tick should not step the game")
	}

	m, cmd = sendGame(t, m, TickMsg{Gen: m.gen})
	if cmd == nil {
		t.Error("tick should schedule the next one")
	}
	if m.State().Level != 1 {
		t.Errorf("Level = %d, want 1", m.State().Level)
	}
}

func TestGameModelGenerations(t *testing.T) {
	a := newTestGameModel(t)
	b := newTestGameModel(t)
	if a.gen == b.gen {
		t.Error("each game model needs its own generation")
	}
}

func TestGameModelInputReachesGame(t *testing.T) {
	m := newTestGameModel(t)

	m, _ = sendGame(t, m, runeKey("1"), TickMsg{Gen: m.gen})
	sel, ok := m.game.(*watersort.Game).Controller().Selected()
	if !ok || sel != 0 {
		t.Errorf("Selected() = (%d, %v), want bottle 0", sel, ok)
	}
	if !m.inputFrame.Empty() {
		t.Error("input frame should be cleared after a tick")
	}
}

func TestGameModelLeaving(t *testing.T) {
	tests := []struct {
		name       string
		standalone bool
		keys       []tea.Msg
		back       bool
		quit       bool
	}{
		{"b returns to menu", false, []tea.Msg{runeKey("b")}, true, false},
		{"esc only cancels while playing", false, []tea.Msg{tea.KeyMsg{Type: tea.KeyEsc}}, false, false},
		{"esc leaves pause", false, []tea.Msg{runeKey("p"), nil, tea.KeyMsg{Type: tea.KeyEsc}}, true, false},
		{"b quits standalone", true, []tea.Msg{runeKey("b")}, false, true},
		{"q quits", false, []tea.Msg{runeKey("q")}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestGameModel(t)
			m.standalone = tt.standalone
			for _, msg := range tt.keys {
				if msg == nil {
					msg = TickMsg{Gen: m.gen}
				}
				m, _ = sendGame(t, m, msg)
			}
			if m.BackToMenu() != tt.back {
				t.Errorf("BackToMenu() = %v, want %v", m.BackToMenu(), tt.back)
			}
			if m.IsQuitting() != tt.quit {
				t.Errorf("IsQuitting() = %v, want %v", m.IsQuitting(), tt.quit)
			}
		})
	}
}

func TestGameModelView(t *testing.T) {
	m := newTestGameModel(t)
	m, _ = sendGame(t, m, TickMsg{Gen: m.gen})
	if m.View() == "" {
		t.Error("View() should render the game")
	}
}
