package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Digits 1-9 select a bottle directly and are returned as slot.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, slot int, isQuit bool) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, 0, true
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.ActionNone, int(key[0] - '0'), false
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, 0, false
	case "d", "right":
		return core.ActionRight, 0, false
	case "w", "up":
		return core.ActionUp, 0, false
	case "s", "down":
		return core.ActionDown, 0, false
	case " ", "enter":
		return core.ActionSelect, 0, false
	case "esc", "x":
		return core.ActionCancel, 0, false
	case "u", "z", "backspace":
		return core.ActionUndo, 0, false
	case "h", "?":
		return core.ActionHint, 0, false
	case "r":
		return core.ActionRestart, 0, false
	case "n":
		return core.ActionNext, 0, false
	case "p":
		return core.ActionPause, 0, false
	case "b":
		return core.ActionBack, 0, false
	}

	return core.ActionNone, 0, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, slot, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	frame.SetSlot(slot)
	return isQuit
}

// MapMouseToFrame records a left click as a pointer tap.
// Returns true if the message produced input.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	frame.AddPointer(msg.X, msg.Y)
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
	MenuActionToggleMusic
	MenuActionToggleSFX
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	case "m", "M":
		return MenuActionToggleMusic
	case "S", "f":
		return MenuActionToggleSFX
	}

	return MenuActionNone
}
