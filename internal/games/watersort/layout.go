package watersort

import (
	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// Screen rows reserved above and below the bottles.
const (
	hudHeight    = 4
	footerHeight = 2
)

// Slot is the screen area of one bottle.
// Rows from the top: one lift row, Capacity*LayerHeight body rows,
// the bottom rim and the label.
type Slot struct {
	Rect platformcore.Rect
	Row  int
	Col  int
}

// Layout places bottles in a centered grid of at most MaxColumns columns
// and MaxRows rows.
type Layout struct {
	Slots       []Slot
	Columns     int
	Rows        int
	BottleWidth int
	LayerHeight int
	Fits        bool // False when the screen is too small for the grid
}

// SlotHeight returns the height of a bottle slot for the given layer height.
func SlotHeight(layerHeight int) int {
	return core.Capacity*layerHeight + 3
}

// ComputeLayout arranges n bottles on a screen of the given size.
// Horizontal spacing shrinks before the layout is declared too small.
func ComputeLayout(cfg config.LayoutConfig, n, screenW, screenH int) Layout {
	l := Layout{BottleWidth: cfg.BottleWidth, LayerHeight: cfg.LayerHeight}
	if n <= 0 {
		l.Fits = true
		return l
	}

	cols := min(n, cfg.MaxColumns)
	rows := (n + cols - 1) / cols
	if rows > cfg.MaxRows {
		rows = cfg.MaxRows
		cols = (n + rows - 1) / rows
	}
	l.Columns, l.Rows = cols, rows

	spacing := cfg.SpacingX
	for spacing > 1 && rowWidth(cols, cfg.BottleWidth, spacing) > screenW-2 {
		spacing--
	}

	slotH := SlotHeight(cfg.LayerHeight)
	gridH := rows*slotH + (rows-1)*cfg.SpacingY
	l.Fits = rowWidth(cols, cfg.BottleWidth, spacing) <= screenW &&
		hudHeight+gridH+footerHeight <= screenH

	top := hudHeight + max((screenH-hudHeight-footerHeight-gridH)/2, 0)
	l.Slots = make([]Slot, n)
	for i := range l.Slots {
		row, col := i/cols, i%cols
		inRow := min(cols, n-row*cols)
		left := (screenW - rowWidth(inRow, cfg.BottleWidth, spacing)) / 2
		l.Slots[i] = Slot{
			Rect: platformcore.NewRect(
				left+col*(cfg.BottleWidth+spacing),
				top+row*(slotH+cfg.SpacingY),
				cfg.BottleWidth,
				slotH,
			),
			Row: row,
			Col: col,
		}
	}
	return l
}

func rowWidth(cols, bottleW, spacing int) int {
	if cols <= 0 {
		return 0
	}
	return cols*bottleW + (cols-1)*spacing
}

// HitTest returns the bottle under p, or -1 when p hits no bottle.
func (l Layout) HitTest(p platformcore.Point) int {
	for i, s := range l.Slots {
		if s.Rect.Contains(p) {
			return i
		}
	}
	return -1
}

// Neighbor returns the bottle reached from index by a cursor move.
// Left and right wrap around the whole list; up and down keep the column
// when the target row is long enough and otherwise stay put.
func (l Layout) Neighbor(index int, dir platformcore.Action) int {
	n := len(l.Slots)
	if n == 0 {
		return -1
	}
	index = core.Clamp(index, 0, n-1)

	switch dir {
	case platformcore.ActionLeft:
		return (index - 1 + n) % n
	case platformcore.ActionRight:
		return (index + 1) % n
	case platformcore.ActionUp:
		if target := index - l.Columns; target >= 0 {
			return target
		}
	case platformcore.ActionDown:
		if target := index + l.Columns; target < n {
			return target
		}
	}
	return index
}
