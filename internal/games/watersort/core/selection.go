package core

// SelectionState is the state of the pour state machine.
type SelectionState uint8

const (
	StateIdle          SelectionState = iota // Nothing selected
	StateFirstSelected                       // A source bottle is selected
	StateBusy                                // A pour is animating; taps are ignored
)

// String returns the state name.
func (s SelectionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFirstSelected:
		return "first-selected"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// TransferAnimation describes a pour that has already been applied and
// now needs to be shown.
type TransferAnimation struct {
	Source      int
	Destination int
	Color       Color
	Amount      int
}

// Animator plays pour animations. onSettled must be called exactly once
// when the animation is over; it may be called synchronously.
type Animator interface {
	AnimateTransfer(anim TransferAnimation, onSettled func())
}

// InstantAnimator settles every pour immediately.
type InstantAnimator struct{}

// AnimateTransfer calls onSettled right away.
func (InstantAnimator) AnimateTransfer(_ TransferAnimation, onSettled func()) {
	onSettled()
}

// TapKind classifies what a tap did.
type TapKind uint8

const (
	TapIgnored    TapKind = iota // Busy, or the tap hit no bottle
	TapSelected                  // Source bottle selected
	TapDeselected                // Source bottle tapped again
	TapPoured                    // Pour accepted and animation requested
	TapRejected                  // Pour refused; selection cleared
)

// String returns the tap kind name.
func (k TapKind) String() string {
	switch k {
	case TapIgnored:
		return "ignored"
	case TapSelected:
		return "selected"
	case TapDeselected:
		return "deselected"
	case TapPoured:
		return "poured"
	case TapRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// TapResult reports the effect of one tap.
// Request and Outcome are set for TapPoured and TapRejected.
type TapResult struct {
	Kind    TapKind
	Index   int
	Request TransferRequest
	Outcome TransferOutcome
}

// SettleFunc is invoked after a pour settled and the board was evaluated.
type SettleFunc func(req TransferRequest, complete bool)

// SelectionController turns bottle taps into pours.
//
//	Idle           + tap X → FirstSelected(X)
//	FirstSelected X + tap X → Idle
//	FirstSelected X + tap Y → pour X→Y: accepted → Busy, rejected → Idle
//	Busy           + settle → evaluate → Idle
//
// It is not safe for concurrent use.
type SelectionController struct {
	board     *Board
	engine    TransferEngine
	animator  Animator
	evaluator *LevelCompletionEvaluator
	onSettle  SettleFunc

	state    SelectionState
	selected int
	pending  TransferRequest

	// generation invalidates settle callbacks issued before a Reset.
	generation uint64
}

// NewSelectionController creates a controller over board. A nil animator
// settles pours immediately, and a nil evaluator never reports completion.
func NewSelectionController(board *Board, animator Animator, evaluator *LevelCompletionEvaluator) *SelectionController {
	if animator == nil {
		animator = InstantAnimator{}
	}
	return &SelectionController{
		board:     board,
		animator:  animator,
		evaluator: evaluator,
		selected:  -1,
	}
}

// OnSettle registers a hook run after each settled pour.
func (c *SelectionController) OnSettle(fn SettleFunc) {
	c.onSettle = fn
}

// State returns the current state.
func (c *SelectionController) State() SelectionState {
	return c.state
}

// Busy reports whether a pour is animating.
func (c *SelectionController) Busy() bool {
	return c.state == StateBusy
}

// Selected returns the selected source bottle, if any.
func (c *SelectionController) Selected() (int, bool) {
	if c.state != StateFirstSelected {
		return -1, false
	}
	return c.selected, true
}

// Pending returns the pour being animated while Busy.
func (c *SelectionController) Pending() (TransferRequest, bool) {
	if c.state != StateBusy {
		return TransferRequest{}, false
	}
	return c.pending, true
}

// Board returns the board the controller acts on.
func (c *SelectionController) Board() *Board {
	return c.board
}

// Tap handles a tap on bottle index. Indices outside the board count as a
// tap on nothing and change nothing.
func (c *SelectionController) Tap(index int) TapResult {
	if c.state == StateBusy || c.board == nil || !c.board.inRange(index) {
		return TapResult{Kind: TapIgnored, Index: index}
	}

	switch c.state {
	case StateIdle:
		c.selected = index
		c.state = StateFirstSelected
		return TapResult{Kind: TapSelected, Index: index}

	case StateFirstSelected:
		if index == c.selected {
			c.clear()
			return TapResult{Kind: TapDeselected, Index: index}
		}
		return c.pour(TransferRequest{Source: c.selected, Destination: index})
	}

	return TapResult{Kind: TapIgnored, Index: index}
}

func (c *SelectionController) pour(req TransferRequest) TapResult {
	out := c.engine.Apply(c.board, req)
	if !out.Accepted {
		c.clear()
		return TapResult{Kind: TapRejected, Index: req.Destination, Request: req, Outcome: out}
	}

	// Busy must be entered before the animator runs, since it may settle synchronously.
	c.state = StateBusy
	c.selected = -1
	c.pending = req
	gen := c.generation
	c.animator.AnimateTransfer(TransferAnimation{
		Source:      req.Source,
		Destination: req.Destination,
		Color:       out.Color,
		Amount:      out.Amount,
	}, func() { c.settle(gen) })

	return TapResult{Kind: TapPoured, Index: req.Destination, Request: req, Outcome: out}
}

func (c *SelectionController) settle(gen uint64) {
	if gen != c.generation || c.state != StateBusy {
		return
	}
	req := c.pending
	complete := false
	if c.evaluator != nil {
		complete = c.evaluator.Evaluate(c.board.Bottles)
	}
	c.clear()
	if c.onSettle != nil {
		c.onSettle(req, complete)
	}
}

// Cancel drops a FirstSelected selection. It has no effect in other states
// and reports whether anything was cleared.
func (c *SelectionController) Cancel() bool {
	if c.state != StateFirstSelected {
		return false
	}
	c.clear()
	return true
}

// Reset returns to Idle over a new board. Settle callbacks from pours
// started before the reset are discarded.
func (c *SelectionController) Reset(board *Board) {
	c.generation++
	c.board = board
	c.clear()
}

func (c *SelectionController) clear() {
	c.state = StateIdle
	c.selected = -1
	c.pending = TransferRequest{}
}
