// Package watersort provides the Water Sort puzzle game.
// Bottles hold stacked liquid layers; the player pours the top run of one
// bottle into another until every bottle is empty or full of one color.
package watersort

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
)

var (
	// ErrNoLevels is returned when the catalog is empty.
	ErrNoLevels = errors.New("no levels available")

	// ErrLevelLocked is returned when starting a level the player has not unlocked.
	ErrLevelLocked = errors.New("level is locked")
)

// Options configures a game instance. Only Catalog is required.
type Options struct {
	Config     config.WaterSortConfig
	Catalog    *levels.Catalog
	Progress   Progress    // Unlocks and results; nil (or a nil pointer) keeps progress in memory
	Audio      AudioPlayer // nil plays nothing
	Logger     *log.Logger // nil discards logs
	StartLevel int         // Level index opened by Reset
	Now        func() time.Time
}

// Game implements the Water Sort puzzle for the platform loop.
type Game struct {
	cfg      config.WaterSortConfig
	catalog  *levels.Catalog
	progress Progress
	audio    AudioPlayer
	logger   *log.Logger
	now      func() time.Time

	// Pour pipeline
	board      *core.Board
	evaluator  *core.LevelCompletionEvaluator
	controller *core.SelectionController
	scheduler  *Scheduler
	animator   *PourAnimator

	// Current level
	level      levels.Level
	levelIndex int
	startLevel int
	unlocked   int
	runID      uuid.UUID

	// Attempt stats
	moves     int
	best      int // Fewest moves of earlier solves, 0 if none
	undos     int
	hints     int
	playTicks int
	history   []*core.Board

	// Status
	tickRate   int
	solved     bool // Solved signal received for this level
	showSolved bool // Completion delay elapsed
	finished   bool // Last level solved
	paused     bool
	noLevels   bool

	// Presentation
	screenW      int
	screenH      int
	layout       Layout
	cursor       int
	hint         *core.TransferRequest
	message      string
	messageTicks int
}

// New creates a game. Call Reset before the first Step.
func New(opts Options) *Game {
	g := &Game{
		cfg:        opts.Config,
		catalog:    opts.Catalog,
		progress:   opts.Progress,
		audio:      opts.Audio,
		logger:     opts.Logger,
		now:        opts.Now,
		startLevel: opts.StartLevel,
		unlocked:   1,
		tickRate:   60,
		scheduler:  NewScheduler(),
	}
	if isNilProgress(g.progress) {
		g.progress = nil
	}
	if g.cfg == (config.WaterSortConfig{}) {
		g.cfg = config.Default()
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.catalog == nil {
		g.catalog = levels.NewCatalog(nil)
	}

	g.animator = NewPourAnimator(g.scheduler, g.cfg.Animation)
	g.evaluator = core.NewLevelCompletionEvaluator(g, 0)
	g.controller = core.NewSelectionController(nil, g.animator, g.evaluator)
	g.controller.OnSettle(g.onSettle)
	return g
}

// isNilProgress reports whether p is nil or wraps a nil pointer.
func isNilProgress(p Progress) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "watersort"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Water Sort"
}

// Reset initializes the game and opens the start level, or the highest
// unlocked level if the start level is locked.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	if cfg.TickRate > 0 {
		g.tickRate = cfg.TickRate
	}
	g.finished = false
	g.paused = false
	g.refreshUnlocked()

	if g.catalog.Len() == 0 {
		g.noLevels = true
		g.logger.Error("no levels available")
		return
	}
	g.noLevels = false

	start := core.Clamp(g.startLevel, 0, g.catalog.Len()-1)
	start = min(start, g.unlocked-1)
	g.loadLevel(start)
}

// Resize updates the screen size and recomputes the bottle layout.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.layout = ComputeLayout(g.cfg.Layout, g.bottleCount(), w, h)
}

// StartLevel opens the level at index if it is unlocked.
func (g *Game) StartLevel(index int) error {
	if g.catalog.Len() == 0 {
		return ErrNoLevels
	}
	if index < 0 || index >= g.catalog.Len() {
		return fmt.Errorf("%w: index %d", levels.ErrLevelNotFound, index)
	}
	g.refreshUnlocked()
	if index >= g.unlocked {
		return fmt.Errorf("%w: level %d (unlocked %d)", ErrLevelLocked, index+1, g.unlocked)
	}
	g.finished = false
	g.paused = false
	g.loadLevel(index)
	return nil
}

func (g *Game) lookupBest() int {
	bm, ok := g.progress.(BestMoves)
	if !ok {
		return 0
	}
	n, err := bm.BestMoves(g.level.ID)
	if err != nil {
		g.logger.Warn("cannot read best result", "level", g.level.ID, "err", err)
		return 0
	}
	return n
}

func (g *Game) refreshUnlocked() {
	if g.progress == nil {
		return
	}
	n, err := g.progress.UnlockedLevels()
	if err != nil {
		g.logger.Warn("cannot read unlocked levels", "err", err)
		return
	}
	g.unlocked = max(n, 1)
}

// loadLevel opens the catalog level at index.
func (g *Game) loadLevel(index int) {
	lvl, ok := g.catalog.At(index)
	if !ok {
		g.noLevels = true
		return
	}
	g.openLevel(lvl, index)
}

// resolveIndex finds the open level in the catalog, which the level
// watcher may have replaced since the level was opened. ok is false when
// the level is no longer listed.
func (g *Game) resolveIndex() (index int, ok bool) {
	if i := g.catalog.Index(g.level.ID); i >= 0 {
		g.levelIndex = i
		return i, true
	}
	return g.levelIndex, false
}

// restart replays the open level from its initial layout, even if a
// reload dropped it from the catalog.
func (g *Game) restart() {
	index, _ := g.resolveIndex()
	g.openLevel(g.level, index)
}

// openLevel resets every piece of per-level state.
func (g *Game) openLevel(lvl levels.Level, index int) {
	g.level = lvl
	g.levelIndex = index
	g.board = lvl.NewBoard()

	g.animator.Reset()
	g.scheduler.Clear()
	g.evaluator.Reset(index)
	g.controller.Reset(g.board)

	g.runID = uuid.New()
	g.moves, g.undos, g.hints, g.playTicks = 0, 0, 0, 0
	g.history = nil
	g.solved, g.showSolved = false, false
	g.cursor = 0
	g.hint = nil
	g.message, g.messageTicks = "", 0
	g.layout = ComputeLayout(g.cfg.Layout, g.board.Len(), g.screenW, g.screenH)
	g.best = g.lookupBest()

	g.logger.Info("level loaded", "level", lvl.ID, "index", index, "bottles", g.board.Len(), "run", g.runID)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionPause) && !g.noLevels {
		g.paused = !g.paused
		g.audio.Play(CueButton)
	}
	if g.paused || g.noLevels || g.board == nil {
		return platformcore.StepResult{State: g.State()}
	}

	g.scheduler.Advance()
	if !g.solved {
		g.playTicks++
	}
	if g.messageTicks > 0 {
		g.messageTicks--
		if g.messageTicks == 0 {
			g.message = ""
		}
	}

	switch {
	case g.finished:
		if in.Has(platformcore.ActionRestart) {
			g.finished = false
			g.loadLevel(0)
		}
	case g.solved:
		if !g.showSolved {
			break
		}
		if in.Has(platformcore.ActionNext) || in.Has(platformcore.ActionSelect) {
			g.next()
		} else if in.Has(platformcore.ActionRestart) {
			g.restart()
		}
	default:
		g.handlePlayInput(in)
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handlePlayInput(in platformcore.InputFrame) {
	if in.Has(platformcore.ActionRestart) {
		g.audio.Play(CueButton)
		g.restart()
		return
	}

	for _, dir := range []platformcore.Action{
		platformcore.ActionLeft, platformcore.ActionRight,
		platformcore.ActionUp, platformcore.ActionDown,
	} {
		if in.Has(dir) {
			g.cursor = g.layout.Neighbor(g.cursor, dir)
		}
	}

	if in.Has(platformcore.ActionCancel) && g.controller.Cancel() {
		g.audio.Play(CueButton)
	}
	if in.Has(platformcore.ActionUndo) {
		g.undo()
	}
	if in.Has(platformcore.ActionHint) {
		g.showHint()
	}

	if in.Has(platformcore.ActionSelect) {
		g.tap(g.cursor)
	}
	if in.Slot > 0 {
		g.tap(in.Slot - 1)
	}
	for _, p := range in.Pointers {
		g.tap(g.layout.HitTest(p))
	}
}

// tap forwards a bottle tap to the controller and applies its side effects.
func (g *Game) tap(index int) {
	var before *core.Board
	if !g.controller.Busy() {
		before = g.board.Clone()
	}

	res := g.controller.Tap(index)
	if res.Kind != core.TapIgnored && index >= 0 {
		g.cursor = index
	}

	switch res.Kind {
	case core.TapSelected:
		g.audio.Play(CueSelect)

	case core.TapDeselected:
		g.audio.Play(CueButton)

	case core.TapPoured:
		g.moves++
		g.pushHistory(before)
		g.hint = nil
		g.audio.Play(CuePour)
		poursTotal.WithLabelValues("accepted").Inc()
		g.logger.Debug("pour", "move", res.Request.String(), "color", res.Outcome.Color.String(),
			"amount", res.Outcome.Amount, "moves", g.moves)

	case core.TapRejected:
		g.audio.Play(CueReject)
		g.flash("Can't pour: " + res.Outcome.Reason.String())
		poursTotal.WithLabelValues(res.Outcome.Reason.String()).Inc()
		g.logger.Debug("pour rejected", "move", res.Request.String(), "err", res.Outcome.Err())
	}
}

func (g *Game) pushHistory(b *core.Board) {
	limit := g.cfg.Gameplay.UndoLimit
	if limit <= 0 || b == nil {
		return
	}
	g.history = append(g.history, b)
	if len(g.history) > limit {
		g.history = g.history[len(g.history)-limit:]
	}
}

// undo reverts the last pour. Never allowed while a pour is animating.
func (g *Game) undo() {
	if g.controller.Busy() {
		return
	}
	if g.cfg.Gameplay.UndoLimit <= 0 {
		g.flash("Undo is disabled")
		return
	}
	if len(g.history) == 0 {
		g.flash("Nothing to undo")
		return
	}

	prev := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.board.Restore(prev)
	g.controller.Cancel()
	g.moves = max(g.moves-1, 0)
	g.undos++
	g.hint = nil
	g.audio.Play(CueButton)
	assistsTotal.WithLabelValues("undo").Inc()
	g.logger.Debug("undo", "moves", g.moves, "left", len(g.history))
}

// showHint highlights the first move of a shortest solution.
func (g *Game) showHint() {
	if !g.cfg.Gameplay.Hints {
		g.flash("Hints are disabled")
		return
	}
	if g.controller.Busy() {
		return
	}

	move, err := core.Hint(g.board, g.cfg.Gameplay.SolverLimit)
	switch {
	case errors.Is(err, core.ErrUnsolvable):
		g.flash("No solution from here. Undo or restart.")
		return
	case errors.Is(err, core.ErrSearchLimit):
		g.flash("No hint found in time")
		return
	case err != nil:
		g.logger.Warn("hint failed", "err", err)
		return
	}

	g.hints++
	g.hint = &move
	g.controller.Cancel()
	g.cursor = move.Source
	assistsTotal.WithLabelValues("hint").Inc()
	g.flash("Hint: pour " + move.String())
}

// onSettle runs after the evaluator has seen the settled board.
func (g *Game) onSettle(req core.TransferRequest, complete bool) {
	g.logger.Debug("pour settled", "move", req.String(), "complete", complete)
}

// LevelSolved implements core.ProgressionSink. It runs once per level attempt.
// The index is looked up again by level ID in case the catalog was reloaded.
func (g *Game) LevelSolved(levelIndex int) {
	g.solved = true
	g.hint = nil
	if i, ok := g.resolveIndex(); ok {
		levelIndex = i
	}
	count := g.catalog.Len()
	g.unlocked = NextUnlock(g.unlocked, levelIndex, count)

	rec := SolveRecord{
		RunID:      g.runID,
		LevelID:    g.level.ID,
		LevelIndex: levelIndex,
		LevelCount: count,
		Moves:      g.moves,
		Undos:      g.undos,
		Hints:      g.hints,
		Duration:   g.Elapsed(),
		SolvedAt:   g.now(),
	}
	if g.progress != nil {
		if n, err := g.progress.UnlockUpTo(g.unlocked); err != nil {
			g.logger.Warn("cannot save unlocked levels", "err", err)
		} else {
			g.unlocked = n
		}
		if err := g.progress.RecordSolve(rec); err != nil {
			g.logger.Warn("cannot save result", "level", rec.LevelID, "err", err)
		}
	}

	if g.best == 0 || g.moves < g.best {
		g.best = g.moves
	}

	levelsSolvedTotal.WithLabelValues(g.level.ID).Inc()
	solveMoves.Observe(float64(g.moves))
	g.audio.Play(CueLevelComplete)
	g.logger.Info("level solved", "level", g.level.ID, "moves", g.moves, "duration", rec.Duration, "unlocked", g.unlocked)

	g.scheduler.After(g.cfg.Animation.CompleteDelayTicks, func() {
		g.showSolved = true
	})
}

// next opens the following level, or finishes the run after the last one.
func (g *Game) next() {
	g.audio.Play(CueButton)
	nextIndex, ok := g.resolveIndex()
	if ok {
		nextIndex++
	}
	// A dropped level leaves its successor at the same index.
	if nextIndex >= g.catalog.Len() {
		g.finished = true
		g.logger.Info("all levels cleared")
		return
	}
	g.loadLevel(nextIndex)
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.messageTicks = 2 * g.tickRate
}

func (g *Game) bottleCount() int {
	if g.board == nil {
		return 0
	}
	return g.board.Len()
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Level:    g.levelIndex + 1,
		Moves:    g.moves,
		Solved:   g.solved,
		Finished: g.finished,
		Paused:   g.paused,
		Busy:     g.controller.Busy(),
	}
}

// Level returns the level in play.
func (g *Game) Level() levels.Level {
	return g.level
}

// LevelIndex returns the index of the level in play.
func (g *Game) LevelIndex() int {
	return g.levelIndex
}

// Best returns the fewest moves the level was solved in, or 0.
func (g *Game) Best() int {
	return g.best
}

// Board returns the live board.
func (g *Game) Board() *core.Board {
	return g.board
}

// Controller returns the selection state machine.
func (g *Game) Controller() *core.SelectionController {
	return g.controller
}

// Unlocked returns how many levels may be started.
func (g *Game) Unlocked() int {
	return g.unlocked
}

// Cursor returns the bottle under the keyboard cursor.
func (g *Game) Cursor() int {
	return g.cursor
}

// Hint returns the move currently highlighted by a hint.
func (g *Game) Hint() (core.TransferRequest, bool) {
	if g.hint == nil {
		return core.TransferRequest{}, false
	}
	return *g.hint, true
}

// Message returns the transient status message, if any.
func (g *Game) Message() string {
	return g.message
}

// Layout returns the current bottle layout.
func (g *Game) Layout() Layout {
	return g.layout
}

// Elapsed returns the unpaused play time of the current attempt.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.playTicks) * time.Second / time.Duration(g.tickRate)
}

// RunID identifies the current attempt.
func (g *Game) RunID() uuid.UUID {
	return g.runID
}
