package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/storage"
)

func TestCheckUnlocked(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	profile := store.Profile("alice")
	if _, err := profile.UnlockUpTo(3); err != nil {
		t.Fatalf("UnlockUpTo() failed: %v", err)
	}

	tests := []struct {
		name     string
		progress watersort.Progress
		start    int
		locked   bool
	}{
		{"unlocked level", profile, 2, false},
		{"locked level", profile, 3, true},
		{"no store first level", nil, 0, false},
		{"no store later level", nil, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkUnlocked(tt.progress, tt.start)
			if got := errors.Is(err, watersort.ErrLevelLocked); got != tt.locked {
				t.Fatalf("checkUnlocked(%d) = %v, locked %v", tt.start, err, tt.locked)
			}
			if tt.locked && tt.progress == nil && !strings.Contains(err.Error(), "unavailable") {
				t.Errorf("error %q should say progress is unavailable", err)
			}
		})
	}
}
