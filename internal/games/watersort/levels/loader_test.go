package levels_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
)

func TestEmbeddedLevels(t *testing.T) {
	lvls, err := levels.Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) < 6 {
		t.Fatalf("expected at least 6 embedded levels, got %d", len(lvls))
	}

	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}

	for _, lvl := range lvls {
		if warns := levels.Warnings(lvl); len(warns) != 0 {
			t.Errorf("%s: unexpected warnings %v", lvl.ID, warns)
		}
		if lvl.NewBoard().IsComplete() {
			t.Errorf("%s starts complete", lvl.ID)
		}
	}
}

func TestEmbeddedLevelsAreSolvable(t *testing.T) {
	lvls, err := levels.Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for _, lvl := range lvls[:5] {
		t.Run(lvl.ID, func(t *testing.T) {
			sol, err := levels.CheckSolvable(lvl, 0)
			if err != nil {
				t.Fatalf("CheckSolvable: %v", err)
			}
			board := lvl.NewBoard()
			for _, m := range sol.Moves {
				if out := (core.TransferEngine{}).Apply(board, m); !out.Accepted {
					t.Fatalf("move %v rejected", m)
				}
			}
			if !board.IsComplete() {
				t.Error("solution does not complete the level")
			}
		})
	}
}

func TestFirstPourLayout(t *testing.T) {
	lvl, err := levels.Embedded().LoadByID("lvl01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if lvl.Name != "First Pour" || len(lvl.Bottles) != 3 {
		t.Fatalf("unexpected level %+v", lvl)
	}
	want := []core.Color{core.ColorRed, core.ColorRed, core.ColorRed, core.ColorBlue}
	for i, c := range want {
		if lvl.Bottles[0][i] != c {
			t.Errorf("bottle 1 layer %d = %v, expected %v", i, lvl.Bottles[0][i], c)
		}
	}
	if len(lvl.Bottles[2]) != 0 {
		t.Errorf("bottle 3 should be empty, got %v", lvl.Bottles[2])
	}
}

func TestCountTrimsColors(t *testing.T) {
	lvl, err := levels.Embedded().LoadByID("lvl05")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if n := len(lvl.Bottles[3]); n != 0 {
		t.Errorf("count 0 bottle has %d layers", n)
	}
}

func TestValidationCodes(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing id", "name: x\nbottles:\n  - colors: [red]\n", levels.CodeMissingField},
		{"no bottles", "id: a\nbottles: []\n", levels.CodeNoBottles},
		{"count too large", "id: a\nbottles:\n  - colors: [red]\n    count: 5\n", levels.CodeBadCount},
		{"negative count", "id: a\nbottles:\n  - colors: [red]\n    count: -1\n", levels.CodeBadCount},
		{"count beyond colors", "id: a\nbottles:\n  - colors: [red]\n    count: 2\n", levels.CodeBadCount},
		{"too many colors", "id: a\nbottles:\n  - colors: [red, red, red, red, red]\n", levels.CodeTooManyColors},
		{"unknown color", "id: a\nbottles:\n  - colors: [red, mauve]\n", levels.CodeUnknownColor},
		{"bad yaml", "id: [\n", levels.CodeParse},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{"bad.yaml": {Data: []byte(tc.body)}}
			_, err := levels.NewFSLoader(fsys, ".").LoadFile("bad.yaml")

			var verr levels.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tc.code {
				t.Errorf("code = %s, expected %s (%v)", verr.Code, tc.code, err)
			}
			if !errors.Is(err, levels.ErrMalformedLevel) {
				t.Error("validation errors should wrap ErrMalformedLevel")
			}
		})
	}
}

func TestColorBalanceWarning(t *testing.T) {
	fsys := fstest.MapFS{"odd.yaml": {Data: []byte("id: odd\nbottles:\n  - colors: [red, red, red]\n  - colors: []\n")}}
	lvl, err := levels.NewFSLoader(fsys, ".").LoadFile("odd.yaml")
	if err != nil {
		t.Fatalf("unbalanced level should still load: %v", err)
	}
	warns := levels.Warnings(lvl)
	if len(warns) != 1 || warns[0].Code != levels.CodeColorBalance {
		t.Errorf("warnings = %v", warns)
	}
	if _, err := levels.CheckSolvable(lvl, 0); !errors.Is(err, levels.ErrMalformedLevel) {
		t.Errorf("CheckSolvable = %v, expected UNSOLVABLE", err)
	}
}

func TestLenientLoaderSkipsBadFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"b.yaml":      {Data: []byte("id: b\nbottles:\n  - colors: [red]\n")},
		"a.yml":       {Data: []byte("id: a\nbottles:\n  - colors: []\n")},
		"broken.yaml": {Data: []byte("bottles: []\n")},
		"dup.yaml":    {Data: []byte("id: a\nbottles:\n  - colors: [blue]\n")},
		"notes.txt":   {Data: []byte("ignored")},
	}

	lvls, err := levels.NewFSLoader(fsys, ".").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 || lvls[0].ID != "a" || lvls[1].ID != "b" {
		t.Fatalf("levels = %+v", lvls)
	}
	if lvls[0].FilePath != "a.yml" {
		t.Errorf("duplicate should not replace the first definition, got %s", lvls[0].FilePath)
	}

	if _, err := levels.NewFSLoader(fsys, ".").Strict(true).LoadAll(); err == nil {
		t.Error("strict loader should fail on a bad file")
	}

	if _, err := levels.NewFSLoader(fsys, ".").LoadByID("zzz"); !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("LoadByID unknown = %v", err)
	}
}

func TestCatalogMergesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "custom.yaml", "id: lvl01\nname: Replaced\nbottles:\n  - colors: [red, red, red, red]\n")
	writeLevel(t, dir, "extra.yaml", "id: zz-extra\nbottles:\n  - colors: [blue]\n")

	cat, err := levels.Load(dir, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	first, _ := cat.At(0)
	if first.ID != "lvl01" || first.Name != "Replaced" {
		t.Errorf("lvl01 not overridden: %+v", first)
	}
	if first.FilePath != filepath.Join(dir, "custom.yaml") {
		t.Errorf("FilePath = %s", first.FilePath)
	}
	if idx := cat.Index("zz-extra"); idx != cat.Len()-1 {
		t.Errorf("extra level at %d, expected last", idx)
	}
	if _, ok := cat.At(cat.Len()); ok {
		t.Error("At past the end should fail")
	}

	v := cat.Version()
	cat.Replace(cat.Levels()[:1])
	if cat.Len() != 1 || cat.Version() != v+1 {
		t.Errorf("Replace: len %d version %d", cat.Len(), cat.Version())
	}
}

func TestWatcherReloadsCatalog(t *testing.T) {
	dir := t.TempDir()
	cat, err := levels.Load(dir, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	base := cat.Len()

	w, err := levels.NewWatcher(dir, cat, nil)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	reloaded := make(chan int, 4)
	w.OnReload = func(n int) { reloaded <- n }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeLevel(t, dir, "new.yaml", "id: zz-new\nbottles:\n  - colors: [green]\n")

	select {
	case n := <-reloaded:
		if n != base+1 {
			t.Errorf("reloaded %d levels, expected %d", n, base+1)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
	if cat.Index("zz-new") < 0 {
		t.Error("new level missing after reload")
	}
}

func writeLevel(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
