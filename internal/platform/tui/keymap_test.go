package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		slot   int
		quit   bool
	}{
		{"digit", runeKey("3"), core.ActionNone, 3, false},
		{"nine", runeKey("9"), core.ActionNone, 9, false},
		{"zero ignored", runeKey("0"), core.ActionNone, 0, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, 0, false},
		{"d", runeKey("d"), core.ActionRight, 0, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, 0, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, 0, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel, 0, false},
		{"undo", runeKey("u"), core.ActionUndo, 0, false},
		{"hint", runeKey("?"), core.ActionHint, 0, false},
		{"restart", runeKey("r"), core.ActionRestart, 0, false},
		{"next", runeKey("n"), core.ActionNext, 0, false},
		{"pause", runeKey("p"), core.ActionPause, 0, false},
		{"back", runeKey("b"), core.ActionBack, 0, false},
		{"q", runeKey("q"), core.ActionQuit, 0, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, 0, true},
		{"unbound", runeKey("y"), core.ActionNone, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, slot, quit := km.MapKey(tt.msg)
			if action != tt.action || slot != tt.slot || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %d, %v), want (%v, %d, %v)",
					tt.msg.String(), action, slot, quit, tt.action, tt.slot, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(runeKey("2"), &frame)
	km.MapKeyToFrame(runeKey("u"), &frame)

	if frame.Slot != 2 {
		t.Errorf("Slot = %d, want 2", frame.Slot)
	}
	if !frame.Has(core.ActionUndo) {
		t.Error("frame should have ActionUndo")
	}
	if quit := km.MapKeyToFrame(runeKey("q"), &frame); !quit {
		t.Error("q should report quit")
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.MouseMsg
		want bool
	}{
		{"left press", tea.MouseMsg{X: 5, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, true},
		{"left release", tea.MouseMsg{X: 5, Y: 7, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, false},
		{"right press", tea.MouseMsg{X: 5, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, false},
		{"motion", tea.MouseMsg{X: 5, Y: 7, Action: tea.MouseActionMotion}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if got := km.MapMouseToFrame(tt.msg, &frame); got != tt.want {
				t.Fatalf("MapMouseToFrame() = %v, want %v", got, tt.want)
			}
			if !tt.want {
				if len(frame.Pointers) != 0 {
					t.Errorf("Pointers = %v, want none", frame.Pointers)
				}
				return
			}
			if len(frame.Pointers) != 1 || frame.Pointers[0] != (core.Point{X: 5, Y: 7}) {
				t.Errorf("Pointers = %v, want [(5,7)]", frame.Pointers)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("m"), MenuActionToggleMusic},
		{runeKey("S"), MenuActionToggleSFX},
		{runeKey("s"), MenuActionDown},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
