package core

import (
	"fmt"
	"strings"
)

// Capacity is the number of layers a bottle holds.
const Capacity = 4

// TopRun is the maximal group of same-colored layers at the top of a bottle.
type TopRun struct {
	Color  Color
	Length int
}

// BottleStack is an ordered stack of liquid layers.
// Index 0 is the bottom, Count()-1 is the top. Slots at or above Count()
// always hold ColorNone.
// The zero value is an empty bottle.
type BottleStack struct {
	layers [Capacity]Color
	count  int
}

// NewBottle builds a bottle from its layers, bottom first.
func NewBottle(colors ...Color) (BottleStack, error) {
	var b BottleStack
	if len(colors) > Capacity {
		return b, fmt.Errorf("%w: %d layers, capacity is %d", ErrBottleOverflow, len(colors), Capacity)
	}
	for i, c := range colors {
		if !c.Valid() {
			return b, fmt.Errorf("%w: layer %d", ErrInvalidColor, i)
		}
		b.layers[i] = c
	}
	b.count = len(colors)
	return b, nil
}

// MustBottle is like NewBottle but panics on error.
// Intended for fixtures and embedded content known to be valid.
func MustBottle(colors ...Color) BottleStack {
	b, err := NewBottle(colors...)
	if err != nil {
		panic(err)
	}
	return b
}

// Count returns the number of filled layers.
func (b BottleStack) Count() int {
	return b.count
}

// Layer returns the color at index i, or ColorNone outside [0, Count()).
func (b BottleStack) Layer(i int) Color {
	if i < 0 || i >= b.count {
		return ColorNone
	}
	return b.layers[i]
}

// Layers returns a copy of the filled layers, bottom first.
func (b BottleStack) Layers() []Color {
	out := make([]Color, b.count)
	copy(out, b.layers[:b.count])
	return out
}

// Top returns the top color, or ColorNone for an empty bottle.
func (b BottleStack) Top() Color {
	if b.count == 0 {
		return ColorNone
	}
	return b.layers[b.count-1]
}

// TopRun returns the run of same-colored layers at the top.
// ok is false for an empty bottle.
func (b BottleStack) TopRun() (run TopRun, ok bool) {
	if b.count == 0 {
		return TopRun{}, false
	}
	top := b.layers[b.count-1]
	length := 0
	for i := b.count - 1; i >= 0 && b.layers[i] == top; i-- {
		length++
	}
	return TopRun{Color: top, Length: length}, true
}

// IsEmpty reports whether the bottle holds no liquid.
func (b BottleStack) IsEmpty() bool {
	return b.count == 0
}

// IsFull reports whether the bottle is at capacity.
func (b BottleStack) IsFull() bool {
	return b.count == Capacity
}

// IsUniform reports whether every filled layer has the same color.
// An empty bottle is uniform.
func (b BottleStack) IsUniform() bool {
	for i := 1; i < b.count; i++ {
		if b.layers[i] != b.layers[0] {
			return false
		}
	}
	return true
}

// IsSettled reports whether the bottle is empty or full of a single color.
func (b BottleStack) IsSettled() bool {
	if b.count == 0 {
		return true
	}
	return b.count == Capacity && b.IsUniform()
}

// RemainingCapacity returns how many more layers fit.
func (b BottleStack) RemainingCapacity() int {
	return Capacity - b.count
}

// CanAccept reports whether at least one layer of color c could be poured in.
func (b BottleStack) CanAccept(c Color) bool {
	if b.count == Capacity {
		return false
	}
	return b.count == 0 || b.layers[b.count-1] == c
}

// AcceptTop appends up to length layers of color c and returns how many
// were accepted. Nothing is accepted when the top color differs.
func (b *BottleStack) AcceptTop(c Color, length int) int {
	if length <= 0 || !c.Valid() || !b.CanAccept(c) {
		return 0
	}
	amount := min(length, b.RemainingCapacity())
	for i := 0; i < amount; i++ {
		b.layers[b.count] = c
		b.count++
	}
	return amount
}

// RemoveTop removes amount layers from the top and returns how many were removed.
// Callers are expected to pass at most TopRun().Length; the amount is
// clamped to Count() so the layer bounds always hold.
func (b *BottleStack) RemoveTop(amount int) int {
	amount = Clamp(amount, 0, b.count)
	for i := 0; i < amount; i++ {
		b.count--
		b.layers[b.count] = ColorNone
	}
	return amount
}

// key returns the raw slot bytes, which identify the bottle uniquely.
func (b BottleStack) key() [Capacity]byte {
	var k [Capacity]byte
	for i, c := range b.layers {
		k[i] = byte(c)
	}
	return k
}

// String renders the bottle bottom first, e.g. "[RRB.]".
func (b BottleStack) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, c := range b.layers {
		sb.WriteRune(c.Char())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
