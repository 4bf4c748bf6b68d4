package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

const (
	R = core.ColorRed
	G = core.ColorGreen
	B = core.ColorBlue
	Y = core.ColorYellow
	P = core.ColorPurple
)

func TestNewBottle(t *testing.T) {
	if _, err := core.NewBottle(R, R, R, R, R); !errors.Is(err, core.ErrBottleOverflow) {
		t.Errorf("5 layers: expected ErrBottleOverflow, got %v", err)
	}
	if _, err := core.NewBottle(R, core.ColorNone); !errors.Is(err, core.ErrInvalidColor) {
		t.Errorf("ColorNone layer: expected ErrInvalidColor, got %v", err)
	}

	b, err := core.NewBottle(R, G)
	if err != nil {
		t.Fatalf("NewBottle: %v", err)
	}
	if b.Count() != 2 || b.Layer(0) != R || b.Layer(1) != G || b.Top() != G {
		t.Errorf("unexpected bottle %v", b)
	}
	if b.Layer(2) != core.ColorNone || b.Layer(-1) != core.ColorNone {
		t.Error("Layer outside count should be ColorNone")
	}
}

func TestFullUniformBottleIsSettled(t *testing.T) {
	b := core.MustBottle(R, R, R, R)
	if !b.IsSettled() {
		t.Error("[R,R,R,R] should be settled")
	}
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		name   string
		bottle core.BottleStack
		want   bool
	}{
		{"empty", core.BottleStack{}, true},
		{"full uniform", core.MustBottle(B, B, B, B), true},
		{"full mixed", core.MustBottle(B, B, B, R), false},
		{"partial uniform", core.MustBottle(G, G, G), false},
		{"single layer", core.MustBottle(Y), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.bottle.IsSettled(); got != tc.want {
				t.Errorf("IsSettled(%v) = %v, expected %v", tc.bottle, got, tc.want)
			}
		})
	}
}

func TestTopRun(t *testing.T) {
	tests := []struct {
		name   string
		bottle core.BottleStack
		want   core.TopRun
		ok     bool
	}{
		{"empty", core.BottleStack{}, core.TopRun{}, false},
		{"single", core.MustBottle(R), core.TopRun{Color: R, Length: 1}, true},
		{"run of two", core.MustBottle(R, B, B), core.TopRun{Color: B, Length: 2}, true},
		{"whole bottle", core.MustBottle(G, G, G, G), core.TopRun{Color: G, Length: 4}, true},
		{"run broken below", core.MustBottle(Y, R, Y, Y), core.TopRun{Color: Y, Length: 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.bottle.TopRun()
			if ok != tc.ok || got != tc.want {
				t.Errorf("TopRun() = %+v, %v; expected %+v, %v", got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestAcceptTop(t *testing.T) {
	tests := []struct {
		name     string
		bottle   core.BottleStack
		color    core.Color
		length   int
		accepted int
		count    int
	}{
		{"into empty", core.BottleStack{}, R, 2, 2, 2},
		{"matching top", core.MustBottle(R), R, 2, 2, 3},
		{"capped by capacity", core.MustBottle(R, R, R), R, 3, 1, 4},
		{"mismatched top", core.MustBottle(B), R, 1, 0, 1},
		{"full", core.MustBottle(R, R, R, R), R, 1, 0, 4},
		{"zero length", core.BottleStack{}, R, 0, 0, 0},
		{"none color", core.BottleStack{}, core.ColorNone, 2, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.bottle
			if got := b.AcceptTop(tc.color, tc.length); got != tc.accepted {
				t.Errorf("AcceptTop() = %d, expected %d", got, tc.accepted)
			}
			if b.Count() != tc.count {
				t.Errorf("Count() = %d, expected %d", b.Count(), tc.count)
			}
		})
	}
}

func TestRemoveTop(t *testing.T) {
	b := core.MustBottle(R, B, B)
	if got := b.RemoveTop(2); got != 2 {
		t.Errorf("RemoveTop(2) = %d", got)
	}
	if b.Count() != 1 || b.Top() != R {
		t.Errorf("after RemoveTop, bottle = %v", b)
	}

	// Clamped at zero
	if got := b.RemoveTop(5); got != 1 || !b.IsEmpty() {
		t.Errorf("RemoveTop(5) = %d, bottle = %v", got, b)
	}
	if b != (core.BottleStack{}) {
		t.Errorf("emptied bottle should equal the zero value, got %v", b)
	}
}

func TestRemainingCapacity(t *testing.T) {
	for n := 0; n <= core.Capacity; n++ {
		colors := make([]core.Color, n)
		for i := range colors {
			colors[i] = R
		}
		b := core.MustBottle(colors...)
		if got := b.RemainingCapacity(); got != core.Capacity-n {
			t.Errorf("count %d: RemainingCapacity() = %d", n, got)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want core.Color
		ok   bool
	}{
		{"red", core.ColorRed, true},
		{" Blue ", core.ColorBlue, true},
		{"G", core.ColorGreen, true},
		{"grey", core.ColorGray, true},
		{"teal", core.ColorTeal, true},
		{"mauve", core.ColorNone, false},
		{"", core.ColorNone, false},
	}

	for _, tc := range tests {
		got, ok := core.ParseColor(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseColor(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}

	for _, c := range core.AllColors() {
		if back, ok := core.ParseColor(c.String()); !ok || back != c {
			t.Errorf("ParseColor(%q) did not round-trip", c.String())
		}
	}
}
