package watersort

import (
	"slices"
	"strconv"

	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// liquidColors maps liquid colors to screen colors.
var liquidColors = map[core.Color]platformcore.Color{
	core.ColorRed:    platformcore.ColorRed,
	core.ColorOrange: platformcore.ColorOrange,
	core.ColorYellow: platformcore.ColorBrightYellow,
	core.ColorGreen:  platformcore.ColorGreen,
	core.ColorBlue:   platformcore.ColorBrightBlue,
	core.ColorPurple: platformcore.ColorPurple,
	core.ColorPink:   platformcore.ColorPink,
	core.ColorCyan:   platformcore.ColorCyan,
	core.ColorBrown:  platformcore.ColorBrown,
	core.ColorGray:   platformcore.ColorGray,
	core.ColorLime:   platformcore.ColorBrightGreen,
	core.ColorTeal:   platformcore.ColorTeal,
}

// ScreenColor returns the screen color used to draw a liquid.
func ScreenColor(c core.Color) platformcore.Color {
	if sc, ok := liquidColors[c]; ok {
		return sc
	}
	return platformcore.ColorWhite
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.noLevels || g.board == nil {
		g.renderOverlay(dst, "No levels found", "Check the levels directory")
		return
	}
	if !g.layout.Fits {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBottles(dst)
	g.renderFooter(dst)

	switch {
	case g.finished:
		g.renderOverlay(dst, "All levels cleared!", "R: play again | Esc: menu")
	case g.showSolved:
		g.renderOverlay(dst, "Level solved in "+strconv.Itoa(g.moves)+" moves", "Enter: next level | R: replay")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " Water Sort"
	if g.board != nil {
		hud += " | Level " + strconv.Itoa(g.levelIndex+1) + "/" + strconv.Itoa(g.catalog.Len()) +
			": " + g.level.Title() +
			" | Moves: " + strconv.Itoa(g.moves)
		if g.best > 0 {
			hud += " | Best: " + strconv.Itoa(g.best)
		}
		if limit := g.cfg.Gameplay.UndoLimit; limit > 0 {
			hud += " | Undo: " + strconv.Itoa(len(g.history))
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)

	controls := " ←/→/↑/↓: Move | Space: Select | 1-9: Bottle | U: Undo | R: Restart | P: Pause"
	if g.cfg.Gameplay.Hints {
		controls += " | H: Hint"
	}
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

func (g *Game) renderFooter(dst *platformcore.Screen) {
	y := dst.Height() - 1
	if g.message != "" {
		dst.DrawTextWithColor(1, y, g.message, platformcore.ColorBrightYellow)
		return
	}
	switch g.controller.State() {
	case core.StateFirstSelected:
		sel, _ := g.controller.Selected()
		dst.DrawTextWithColor(1, y, "Pour bottle "+strconv.Itoa(sel+1)+" into...", platformcore.ColorGray)
	case core.StateBusy:
		dst.DrawTextWithColor(1, y, "Pouring...", platformcore.ColorGray)
	}
}

// displayBottles returns the bottles as drawn this frame and the lifted
// bottle, or -1. An in-flight pour is shown partly moved.
func (g *Game) displayBottles() ([]core.BottleStack, int) {
	bottles := make([]core.BottleStack, g.board.Len())
	copy(bottles, g.board.Bottles)

	lifted := -1
	if sel, ok := g.controller.Selected(); ok {
		lifted = sel
	}

	if pour, ok := g.animator.Active(); ok {
		phase, _ := pour.Phase(g.scheduler.Now())
		if phase != PhaseReturn {
			lifted = pour.Source
		}
		// The board already holds the result; put back what has not flowed yet.
		if left := pour.Amount - pour.LayersMoved(g.scheduler.Now()); left > 0 {
			bottles[pour.Destination].RemoveTop(left)
			bottles[pour.Source] = restoreTop(bottles[pour.Source], pour.Color, left)
		}
	}
	return bottles, lifted
}

// restoreTop stacks n layers of c back on b. The new top of a partly
// emptied source is another color, so CanAccept rules do not apply.
func restoreTop(b core.BottleStack, c core.Color, n int) core.BottleStack {
	layers := append(b.Layers(), slices.Repeat([]core.Color{c}, n)...)
	restored, err := core.NewBottle(layers...)
	if err != nil {
		return b
	}
	return restored
}

// renderBottles draws every bottle.
func (g *Game) renderBottles(dst *platformcore.Screen) {
	bottles, lifted := g.displayBottles()
	hint, hasHint := g.Hint()
	for i, b := range bottles {
		if i >= len(g.layout.Slots) {
			break
		}
		wall := platformcore.ColorWhite
		switch {
		case i == lifted:
			wall = platformcore.ColorBrightWhite
		case b.IsSettled() && !b.IsEmpty():
			wall = platformcore.ColorGreen
		case hasHint && (i == hint.Source || i == hint.Destination):
			wall = platformcore.ColorBrightGreen
		}
		g.renderBottle(dst, g.layout.Slots[i], b, i == lifted, wall)
		g.renderLabel(dst, g.layout.Slots[i], i, hasHint && i == hint.Source)
	}
}

// renderBottle draws one bottle inside its slot. A lifted bottle is drawn
// one row higher, using the slot's spare top row.
func (g *Game) renderBottle(dst *platformcore.Screen, slot Slot, b core.BottleStack, lifted bool, wall platformcore.Color) {
	r := slot.Rect
	lh := g.layout.LayerHeight
	bodyH := core.Capacity * lh

	top := r.Y + 1
	if lifted {
		top = r.Y
	}
	rim := top + bodyH

	dst.DrawVLine(r.X, top, bodyH, '│', wall)
	dst.DrawVLine(r.Right()-1, top, bodyH, '│', wall)
	dst.SetWithColor(r.X, rim, '└', wall)
	dst.SetWithColor(r.Right()-1, rim, '┘', wall)
	dst.DrawHLine(r.X+1, rim, r.W-2, '─', wall)

	inner := r.W - 2
	for i := 0; i < b.Count(); i++ {
		c := b.Layer(i)
		sc := ScreenColor(c)
		for k := 0; k < lh; k++ {
			y := rim - 1 - i*lh - k
			for x := 0; x < inner; x++ {
				ch := '█'
				if k == 0 && x == inner/2 {
					ch = c.Char()
				}
				dst.SetWithColor(r.X+1+x, y, ch, sc)
			}
		}
	}
}

func (g *Game) renderLabel(dst *platformcore.Screen, slot Slot, index int, hinted bool) {
	label := strconv.Itoa(index + 1)
	color := platformcore.ColorGray
	switch {
	case index == g.cursor:
		label = "[" + label + "]"
		color = platformcore.ColorBrightYellow
	case hinted:
		label = "^" + label
		color = platformcore.ColorBrightGreen
	}
	r := slot.Rect
	x := r.X + (r.W-len(label))/2
	dst.DrawTextWithColor(x, r.Bottom()-1, label, color)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	box := platformcore.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.FillRect(box, ' ', platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorGray)
}
