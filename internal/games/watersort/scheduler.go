package watersort

import (
	"sort"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id TimerID
	at uint64
	fn func()
}

// Scheduler runs callbacks after a number of simulation ticks.
// It is driven by Advance from the game loop, so callbacks run on the
// loop's goroutine and stop while the game is paused.
type Scheduler struct {
	now    uint64
	nextID TimerID
	timers []timer
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the number of ticks advanced so far.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// After schedules fn to run ticks ticks from now. Callbacks never run
// synchronously: a delay below 1 fires on the next Advance.
func (s *Scheduler) After(ticks int, fn func()) TimerID {
	s.nextID++
	s.timers = append(s.timers, timer{
		id: s.nextID,
		at: s.now + uint64(max(ticks, 1)),
		fn: fn,
	})
	return s.nextID
}

// Cancel removes a pending callback. It reports whether one was removed.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves time forward one tick and runs every callback that is due,
// in order of due time and then scheduling order. Callbacks scheduled while
// firing wait for a later tick. Returns the number of callbacks run.
func (s *Scheduler) Advance() int {
	s.now++

	var due, rest []timer
	for _, t := range s.timers {
		if t.at <= s.now {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	if len(due) == 0 {
		return 0
	}
	s.timers = rest

	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].id < due[j].id
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Clear drops every pending callback.
func (s *Scheduler) Clear() {
	s.timers = nil
}

// PourPhase is the stage of a pour animation.
type PourPhase uint8

const (
	PhaseLift   PourPhase = iota // Source travels to the destination
	PhasePour                    // Liquid flows
	PhaseReturn                  // Source travels back
)

// ActivePour is the pour currently being animated.
type ActivePour struct {
	core.TransferAnimation
	Start  uint64
	Lift   int
	Pour   int
	Return int
}

// Phase returns the stage at tick now and how far into it the pour is, in [0, 1].
func (p ActivePour) Phase(now uint64) (PourPhase, float64) {
	elapsed := int(now - p.Start)
	switch {
	case elapsed < p.Lift:
		return PhaseLift, float64(elapsed) / float64(p.Lift)
	case elapsed < p.Lift+p.Pour:
		return PhasePour, float64(elapsed-p.Lift) / float64(p.Pour)
	case p.Return > 0:
		return PhaseReturn, min(float64(elapsed-p.Lift-p.Pour)/float64(p.Return), 1)
	default:
		return PhaseReturn, 1
	}
}

// LayersMoved returns how many of the pour's layers are shown in the
// destination at tick now.
func (p ActivePour) LayersMoved(now uint64) int {
	phase, progress := p.Phase(now)
	switch phase {
	case PhaseLift:
		return 0
	case PhasePour:
		return core.Clamp(int(progress*float64(p.Amount)), 0, p.Amount)
	default:
		return p.Amount
	}
}

// PourAnimator implements core.Animator on top of a Scheduler.
// The pour is already applied to the board; the animator only decides when
// it counts as settled and what the renderer shows meanwhile.
type PourAnimator struct {
	sched  *Scheduler
	cfg    config.AnimationConfig
	active *ActivePour
	timer  TimerID
}

// NewPourAnimator creates an animator timed by cfg.
func NewPourAnimator(sched *Scheduler, cfg config.AnimationConfig) *PourAnimator {
	return &PourAnimator{sched: sched, cfg: cfg}
}

// AnimateTransfer schedules onSettled for the end of the pour.
func (a *PourAnimator) AnimateTransfer(anim core.TransferAnimation, onSettled func()) {
	a.active = &ActivePour{
		TransferAnimation: anim,
		Start:             a.sched.Now(),
		Lift:              a.cfg.LiftTicks,
		Pour:              a.cfg.PourTicksPerLayer * anim.Amount,
		Return:            a.cfg.ReturnTicks,
	}
	a.timer = a.sched.After(a.cfg.PourTicks(anim.Amount), func() {
		a.active = nil
		onSettled()
	})
}

// Active returns the pour being animated, if any.
func (a *PourAnimator) Active() (ActivePour, bool) {
	if a.active == nil {
		return ActivePour{}, false
	}
	return *a.active, true
}

// Reset forgets the current animation and cancels its settle callback.
func (a *PourAnimator) Reset() {
	if a.active != nil {
		a.sched.Cancel(a.timer)
	}
	a.active = nil
}

var _ core.Animator = (*PourAnimator)(nil)
