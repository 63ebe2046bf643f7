package world

import "errors"

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("world: coordinates out of bounds")

	// ErrInvalidDimensions is returned when a grid would have no cells.
	ErrInvalidDimensions = errors.New("world: invalid dimensions")
)
