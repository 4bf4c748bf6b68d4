package core

import "errors"

var (
	// ErrEmptyBottle is returned when an operation needs a top layer and the bottle has none.
	ErrEmptyBottle = errors.New("empty bottle")

	// ErrInvalidTransfer wraps every rejected pour.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrBottleOverflow is returned when a bottle is built with more than Capacity layers.
	ErrBottleOverflow = errors.New("bottle overflow")

	// ErrInvalidColor is returned when a bottle is built with ColorNone or an unknown color.
	ErrInvalidColor = errors.New("invalid color")
)
