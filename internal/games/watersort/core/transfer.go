package core

import "fmt"

// RejectReason explains why a pour was refused.
type RejectReason uint8

const (
	ReasonNone RejectReason = iota
	ReasonSameBottle
	ReasonEmptySource
	ReasonColorMismatch
	ReasonDestinationFull
	ReasonOutOfRange
)

// String returns a short description of the reason.
func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSameBottle:
		return "same bottle"
	case ReasonEmptySource:
		return "source is empty"
	case ReasonColorMismatch:
		return "color mismatch"
	case ReasonDestinationFull:
		return "destination is full"
	case ReasonOutOfRange:
		return "bottle out of range"
	default:
		return "unknown"
	}
}

// TransferRequest names the bottles of one pour by index.
type TransferRequest struct {
	Source      int
	Destination int
}

// String formats the request with 1-based bottle numbers, e.g. "1→3".
func (r TransferRequest) String() string {
	return fmt.Sprintf("%d→%d", r.Source+1, r.Destination+1)
}

// TransferOutcome is the result of a pour attempt.
type TransferOutcome struct {
	Accepted bool
	Amount   int   // Layers moved, 0 when rejected
	Color    Color // Color that moved, ColorNone when rejected
	Reason   RejectReason
}

// Err returns nil for an accepted pour and an error wrapping
// ErrInvalidTransfer otherwise.
func (o TransferOutcome) Err() error {
	if o.Accepted {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransfer, o.Reason)
}

func rejected(r RejectReason) TransferOutcome {
	return TransferOutcome{Reason: r}
}

// TransferEngine decides whether a pour is legal, how much moves,
// and applies it to both bottles as one step.
// The zero value is ready to use.
type TransferEngine struct{}

// Preview reports what AttemptTransfer would do without mutating anything.
func (TransferEngine) Preview(source, destination BottleStack) TransferOutcome {
	run, ok := source.TopRun()
	if !ok {
		return rejected(ReasonEmptySource)
	}
	if !destination.IsEmpty() && destination.Top() != run.Color {
		return rejected(ReasonColorMismatch)
	}
	remaining := destination.RemainingCapacity()
	if remaining == 0 {
		return rejected(ReasonDestinationFull)
	}
	return TransferOutcome{
		Accepted: true,
		Amount:   min(run.Length, remaining),
		Color:    run.Color,
	}
}

// AttemptTransfer pours the top run of source into destination.
// Either both bottles change or neither does. A rejected attempt leaves
// them untouched and reports why.
func (e TransferEngine) AttemptTransfer(source, destination *BottleStack) TransferOutcome {
	if source == nil || destination == nil {
		return rejected(ReasonOutOfRange)
	}
	if source == destination {
		return rejected(ReasonSameBottle)
	}

	out := e.Preview(*source, *destination)
	if !out.Accepted {
		return out
	}

	// Work on copies and commit both at the end.
	src, dst := *source, *destination
	if got := dst.AcceptTop(out.Color, out.Amount); got != out.Amount {
		return rejected(ReasonDestinationFull)
	}
	src.RemoveTop(out.Amount)

	*source, *destination = src, dst
	return out
}

// Apply runs AttemptTransfer on two bottles of a board.
func (e TransferEngine) Apply(b *Board, req TransferRequest) TransferOutcome {
	if b == nil || !b.inRange(req.Source) || !b.inRange(req.Destination) {
		return rejected(ReasonOutOfRange)
	}
	if req.Source == req.Destination {
		return rejected(ReasonSameBottle)
	}
	return e.AttemptTransfer(&b.Bottles[req.Source], &b.Bottles[req.Destination])
}

// PreviewRequest is Preview addressed by board indices.
func (e TransferEngine) PreviewRequest(b *Board, req TransferRequest) TransferOutcome {
	if b == nil || !b.inRange(req.Source) || !b.inRange(req.Destination) {
		return rejected(ReasonOutOfRange)
	}
	if req.Source == req.Destination {
		return rejected(ReasonSameBottle)
	}
	return e.Preview(b.Bottles[req.Source], b.Bottles[req.Destination])
}
