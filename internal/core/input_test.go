package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionSelect)
	f.SetSlot(3)
	f.SetSlot(0) // ignored
	f.AddPointer(4, 7)

	if !f.Has(ActionSelect) || f.Has(ActionUndo) {
		t.Errorf("Has: unexpected actions %v", f.Actions)
	}
	if f.Slot != 3 {
		t.Errorf("Slot = %d, expected 3", f.Slot)
	}
	if len(f.Pointers) != 1 || f.Pointers[0] != (Point{4, 7}) {
		t.Errorf("Pointers = %v", f.Pointers)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("frame should be empty after Clear, got %+v", f)
	}
}

func TestActionString(t *testing.T) {
	if ActionUndo.String() != "Undo" {
		t.Errorf("ActionUndo.String() = %q", ActionUndo.String())
	}
	if Action(999).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
