package watersort

import (
	"testing"

	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/config"
)

func TestComputeLayout(t *testing.T) {
	cfg := config.Default().Layout

	tests := []struct {
		name       string
		n          int
		w, h       int
		cols, rows int
	}{
		{"single row", 4, 80, 24, 4, 1},
		{"two rows", 9, 80, 24, 7, 2},
		{"row cap widens columns", 16, 120, 40, 8, 2},
		{"too narrow", 7, 20, 24, 7, 1},
		{"too short", 9, 80, 10, 7, 2},
	}
	fitsWant := map[string]bool{
		"single row":             true,
		"two rows":               true,
		"row cap widens columns": true,
		"too narrow":             false,
		"too short":              false,
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := ComputeLayout(cfg, tc.n, tc.w, tc.h)
			if l.Columns != tc.cols || l.Rows != tc.rows {
				t.Errorf("grid = %dx%d, expected %dx%d", l.Columns, l.Rows, tc.cols, tc.rows)
			}
			if l.Fits != fitsWant[tc.name] {
				t.Errorf("Fits = %v, expected %v", l.Fits, fitsWant[tc.name])
			}
			if len(l.Slots) != tc.n {
				t.Errorf("len(Slots) = %d, expected %d", len(l.Slots), tc.n)
			}
		})
	}
}

func TestLayoutNoOverlap(t *testing.T) {
	l := ComputeLayout(config.Default().Layout, 11, 80, 30)

	for i, a := range l.Slots {
		if a.Rect.Y < hudHeight {
			t.Errorf("slot %d overlaps the HUD", i)
		}
		for j, b := range l.Slots[i+1:] {
			if a.Rect.Contains(platformcore.Point{X: b.Rect.X, Y: b.Rect.Y}) {
				t.Errorf("slots %d and %d overlap", i, i+1+j)
			}
		}
	}
}

func TestHitTest(t *testing.T) {
	l := ComputeLayout(config.Default().Layout, 3, 80, 24)

	for i, s := range l.Slots {
		if got := l.HitTest(s.Rect.Center()); got != i {
			t.Errorf("HitTest(center of %d) = %d", i, got)
		}
	}
	if got := l.HitTest(platformcore.Point{X: 0, Y: 0}); got != -1 {
		t.Errorf("HitTest(0,0) = %d, expected -1", got)
	}
}

func TestNeighbor(t *testing.T) {
	// 7 columns: bottles 0-6 on the first row, 7-8 on the second
	l := ComputeLayout(config.Default().Layout, 9, 80, 30)

	tests := []struct {
		from int
		dir  platformcore.Action
		want int
	}{
		{0, platformcore.ActionLeft, 8},
		{8, platformcore.ActionRight, 0},
		{3, platformcore.ActionRight, 4},
		{1, platformcore.ActionDown, 8},
		{5, platformcore.ActionDown, 5},
		{7, platformcore.ActionUp, 0},
		{2, platformcore.ActionUp, 2},
	}
	for _, tc := range tests {
		if got := l.Neighbor(tc.from, tc.dir); got != tc.want {
			t.Errorf("Neighbor(%d, %v) = %d, expected %d", tc.from, tc.dir, got, tc.want)
		}
	}
}
