package core_test

import (
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func TestIsComplete(t *testing.T) {
	tests := []struct {
		name    string
		bottles []core.BottleStack
		want    bool
	}{
		{"no bottles", nil, true},
		{"all empty", []core.BottleStack{{}, {}}, true},
		{"sorted", []core.BottleStack{core.MustBottle(R, R, R, R), {}, core.MustBottle(B, B, B, B)}, true},
		{"partial bottle", []core.BottleStack{core.MustBottle(R, R, R), core.MustBottle(R)}, false},
		{"mixed bottle", []core.BottleStack{core.MustBottle(R, R, R, B), core.MustBottle(B, B, B, R)}, false},
		// Six reds cannot fill bottles exactly.
		{"unbalanced content", []core.BottleStack{core.MustBottle(R, R, R, R), core.MustBottle(R, R)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := core.IsComplete(tc.bottles); got != tc.want {
				t.Errorf("IsComplete() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestSolvedSignalFiresOnce(t *testing.T) {
	sink := &countingSink{}
	eval := core.NewLevelCompletionEvaluator(sink, 2)
	solved := []core.BottleStack{core.MustBottle(G, G, G, G), {}, core.MustBottle(Y, Y, Y, Y)}

	for i := 0; i < 3; i++ {
		if !eval.Evaluate(solved) {
			t.Fatalf("call %d: Evaluate() = false on a complete board", i)
		}
	}
	if len(sink.solved) != 1 || sink.solved[0] != 2 {
		t.Errorf("sink calls = %v, expected exactly [2]", sink.solved)
	}
	if !eval.Solved() {
		t.Error("Solved() should be latched")
	}
}

func TestEvaluatorUnsolvedDoesNotNotify(t *testing.T) {
	sink := &countingSink{}
	eval := core.NewLevelCompletionEvaluator(sink, 0)
	if eval.Evaluate([]core.BottleStack{core.MustBottle(R, B)}) {
		t.Error("Evaluate() = true on an unsolved board")
	}
	if len(sink.solved) != 0 || eval.Solved() {
		t.Error("unsolved board should not notify")
	}
}

func TestEvaluatorReset(t *testing.T) {
	var calls []int
	eval := core.NewLevelCompletionEvaluator(core.ProgressionFunc(func(i int) {
		calls = append(calls, i)
	}), 0)
	solved := []core.BottleStack{{}}

	eval.Evaluate(solved)
	eval.Reset(1)
	if eval.Solved() || eval.Level() != 1 {
		t.Fatal("Reset should clear the latch and switch level")
	}
	eval.Evaluate(solved)

	if len(calls) != 2 || calls[0] != 0 || calls[1] != 1 {
		t.Errorf("calls = %v, expected [0 1]", calls)
	}
}
