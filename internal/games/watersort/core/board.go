package core

import (
	"bytes"
	"slices"
	"strconv"
	"strings"
)

// Board is the set of bottles of one level in play.
type Board struct {
	Bottles []BottleStack
}

// NewBoard creates a board holding copies of the given bottles.
func NewBoard(bottles []BottleStack) *Board {
	return &Board{Bottles: slices.Clone(bottles)}
}

// Len returns the number of bottles.
func (b *Board) Len() int {
	return len(b.Bottles)
}

func (b *Board) inRange(i int) bool {
	return i >= 0 && i < len(b.Bottles)
}

// Bottle returns a copy of bottle i.
func (b *Board) Bottle(i int) (BottleStack, bool) {
	if !b.inRange(i) {
		return BottleStack{}, false
	}
	return b.Bottles[i], true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return NewBoard(b.Bottles)
}

// Restore replaces the board contents with a copy of other.
// The board keeps its identity so holders of the pointer see the change.
func (b *Board) Restore(other *Board) {
	b.Bottles = slices.Clone(other.Bottles)
}

// IsComplete reports whether every bottle is settled.
func (b *Board) IsComplete() bool {
	return IsComplete(b.Bottles)
}

// TotalLayers returns the number of filled layers across all bottles.
func (b *Board) TotalLayers() int {
	total := 0
	for _, bottle := range b.Bottles {
		total += bottle.Count()
	}
	return total
}

// ColorTotals counts filled layers per color.
func (b *Board) ColorTotals() map[Color]int {
	totals := make(map[Color]int)
	for _, bottle := range b.Bottles {
		for i := 0; i < bottle.Count(); i++ {
			totals[bottle.Layer(i)]++
		}
	}
	return totals
}

// Key returns a canonical position key. Boards that differ only by the
// order of their bottles share a key.
func (b *Board) Key() string {
	return positionKey(b.Bottles)
}

func positionKey(bottles []BottleStack) string {
	keys := make([][Capacity]byte, len(bottles))
	for i, bottle := range bottles {
		keys[i] = bottle.key()
	}
	slices.SortFunc(keys, func(x, y [Capacity]byte) int {
		return bytes.Compare(x[:], y[:])
	})
	buf := make([]byte, 0, len(keys)*Capacity)
	for _, k := range keys {
		buf = append(buf, k[:]...)
	}
	return string(buf)
}

// String renders one bottle per line, e.g. "1 [RRB.]".
func (b *Board) String() string {
	var sb strings.Builder
	for i, bottle := range b.Bottles {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte(' ')
		sb.WriteString(bottle.String())
	}
	return sb.String()
}
