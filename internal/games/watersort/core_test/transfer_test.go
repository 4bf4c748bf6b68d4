package core_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func TestRunPoursIntoEmpty(t *testing.T) {
	src := core.MustBottle(R, B, B)
	dst := core.BottleStack{}

	out := core.TransferEngine{}.AttemptTransfer(&src, &dst)

	if !out.Accepted || out.Amount != 2 || out.Color != B {
		t.Fatalf("outcome = %+v, expected 2 blue accepted", out)
	}
	if src.Count() != 1 {
		t.Errorf("source count = %d, expected 1", src.Count())
	}
	if dst.Count() != 2 || dst.Layer(0) != B || dst.Layer(1) != B {
		t.Errorf("destination = %v, expected two blue layers", dst)
	}
}

func TestPourRejectsColorMismatch(t *testing.T) {
	src := core.MustBottle(G, G, G)
	dst := core.MustBottle(B, B, R)
	srcBefore, dstBefore := src, dst

	out := core.TransferEngine{}.AttemptTransfer(&src, &dst)

	if out.Accepted || out.Amount != 0 || out.Reason != core.ReasonColorMismatch {
		t.Fatalf("outcome = %+v, expected color mismatch", out)
	}
	if src != srcBefore || dst != dstBefore {
		t.Error("rejected transfer must not mutate bottles")
	}
	if !errors.Is(out.Err(), core.ErrInvalidTransfer) {
		t.Errorf("Err() = %v, expected ErrInvalidTransfer", out.Err())
	}
}

func TestPourCappedByRemainingCapacity(t *testing.T) {
	src := core.MustBottle(R, Y, Y)
	dst := core.MustBottle(B, G, Y)

	out := core.TransferEngine{}.AttemptTransfer(&src, &dst)

	if !out.Accepted || out.Amount != 1 {
		t.Fatalf("outcome = %+v, expected amount 1", out)
	}
	if src.Count() != 2 || src.Top() != Y {
		t.Errorf("source = %v, expected one yellow left on top", src)
	}
	if !dst.IsFull() || dst.Top() != Y {
		t.Errorf("destination = %v, expected full with yellow on top", dst)
	}
}

func TestTransferRejections(t *testing.T) {
	tests := []struct {
		name     string
		src, dst core.BottleStack
		reason   core.RejectReason
	}{
		{"empty source", core.BottleStack{}, core.MustBottle(R), core.ReasonEmptySource},
		{"full destination", core.MustBottle(R), core.MustBottle(B, B, R, R), core.ReasonDestinationFull},
		{"full mismatched destination", core.MustBottle(R), core.MustBottle(B, B, B, B), core.ReasonColorMismatch},
		{"mismatch", core.MustBottle(R), core.MustBottle(B), core.ReasonColorMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src, dst := tc.src, tc.dst
			out := core.TransferEngine{}.AttemptTransfer(&src, &dst)
			if out.Accepted || out.Reason != tc.reason {
				t.Errorf("outcome = %+v, expected reason %v", out, tc.reason)
			}
			if src != tc.src || dst != tc.dst {
				t.Error("rejected transfer must not mutate bottles")
			}
		})
	}
}

func TestTransferSameBottle(t *testing.T) {
	b := core.MustBottle(R, R)
	out := core.TransferEngine{}.AttemptTransfer(&b, &b)
	if out.Accepted || out.Reason != core.ReasonSameBottle {
		t.Errorf("outcome = %+v, expected same bottle rejection", out)
	}

	board := core.NewBoard([]core.BottleStack{b, {}})
	if out := (core.TransferEngine{}).Apply(board, core.TransferRequest{Source: 1, Destination: 1}); out.Reason != core.ReasonSameBottle {
		t.Errorf("Apply same index: reason = %v", out.Reason)
	}
	if out := (core.TransferEngine{}).Apply(board, core.TransferRequest{Source: 0, Destination: 5}); out.Reason != core.ReasonOutOfRange {
		t.Errorf("Apply out of range: reason = %v", out.Reason)
	}
}

func TestRejectedTransferIsIdempotent(t *testing.T) {
	board := core.NewBoard([]core.BottleStack{
		core.MustBottle(G, G),
		core.MustBottle(R, R, R, B),
	})
	before := board.Clone()
	req := core.TransferRequest{Source: 0, Destination: 1}

	for i := 0; i < 3; i++ {
		out := core.TransferEngine{}.Apply(board, req)
		if out.Accepted {
			t.Fatalf("attempt %d unexpectedly accepted", i)
		}
		if board.Key() != before.Key() || board.String() != before.String() {
			t.Fatalf("attempt %d mutated the board:\n%s", i, board)
		}
	}
}

func TestRandomTransfersKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	board := core.NewBoard([]core.BottleStack{
		core.MustBottle(R, G, B, Y),
		core.MustBottle(Y, R, G, B),
		core.MustBottle(B, Y, R, G),
		core.MustBottle(G, B, Y, R),
		{},
		{},
	})
	totals := board.ColorTotals()
	layers := board.TotalLayers()

	for step := 0; step < 2000; step++ {
		req := core.TransferRequest{
			Source:      rng.IntN(board.Len()),
			Destination: rng.IntN(board.Len()),
		}
		before := board.Clone()
		out := core.TransferEngine{}.Apply(board, req)

		for i, b := range board.Bottles {
			if b.Count() < 0 || b.Count() > core.Capacity {
				t.Fatalf("step %d: bottle %d count %d out of bounds", step, i, b.Count())
			}
		}
		if got := board.TotalLayers(); got != layers {
			t.Fatalf("step %d: total layers %d, expected %d", step, got, layers)
		}
		for c, n := range totals {
			if board.ColorTotals()[c] != n {
				t.Fatalf("step %d: %v total changed", step, c)
			}
		}
		if out.Accepted {
			if board.Bottles[req.Source].Count() != before.Bottles[req.Source].Count()-out.Amount {
				t.Fatalf("step %d: source lost wrong amount", step)
			}
			if board.Bottles[req.Destination].Count() != before.Bottles[req.Destination].Count()+out.Amount {
				t.Fatalf("step %d: destination gained wrong amount", step)
			}
		} else if board.String() != before.String() {
			t.Fatalf("step %d: rejected transfer mutated the board", step)
		}
	}
}
