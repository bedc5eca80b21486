// Package grid provides the geometry collaborator consumed by movement
// resolution: path validity, movement cost, and which creatures threaten a
// square. The rules layer never reasons about space beyond this interface.
package grid

import (
	"errors"
	"fmt"
	"sort"
)

// FeetPerSquare is the movement cost of entering one square.
const FeetPerSquare = 5

// Square is one cell of the battle grid.
type Square struct {
	X int
	Y int
}

// adjacent reports whether b is one step from a, diagonals included.
func (a Square) adjacent(b Square) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > 1 || dy > 1 {
		return false
	}
	return dx+dy > 0
}

// Path validation failures.
var (
	ErrEmptyPath     = errors.New("path has no squares")
	ErrOutOfBounds   = errors.New("square out of bounds")
	ErrBlocked       = errors.New("square is blocked")
	ErrDiscontiguous = errors.New("path squares are not adjacent")
)

// Map is the geometry collaborator movement resolution consults. A path is a
// sequence of squares starting at the mover's current square.
type Map interface {
	// ValidatePath checks that path is contiguous, in bounds, and unblocked.
	// The first square is the mover's origin and is exempt from the blocked
	// check.
	ValidatePath(path []Square) error
	// Cost returns the movement cost in feet of traversing path.
	Cost(path []Square) int
	// ThreatsAt returns the creatures other than moverID whose melee reach
	// covers sq, sorted by creature ID.
	ThreatsAt(sq Square, moverID string) []string
}

// SquareGrid is an in-memory Map over a rectangular battle grid.
type SquareGrid struct {
	width   int
	height  int
	blocked map[Square]struct{}
	// positions holds each creature's current square.
	positions map[string]Square
}

// NewSquareGrid creates an empty grid of the given dimensions.
//
// Precondition: width and height must be positive.
func NewSquareGrid(width, height int) (*SquareGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d: must be positive", width, height)
	}
	return &SquareGrid{
		width:     width,
		height:    height,
		blocked:   make(map[Square]struct{}),
		positions: make(map[string]Square),
	}, nil
}

// Block marks sq impassable.
func (g *SquareGrid) Block(sq Square) {
	g.blocked[sq] = struct{}{}
}

// Place sets a creature's square, adding it if unknown.
//
// Precondition: sq must be in bounds and unblocked.
func (g *SquareGrid) Place(creatureID string, sq Square) error {
	if !g.inBounds(sq) {
		return fmt.Errorf("placing %s at (%d,%d): %w", creatureID, sq.X, sq.Y, ErrOutOfBounds)
	}
	if _, bad := g.blocked[sq]; bad {
		return fmt.Errorf("placing %s at (%d,%d): %w", creatureID, sq.X, sq.Y, ErrBlocked)
	}
	g.positions[creatureID] = sq
	return nil
}

// Remove deletes a creature from the grid. Removing an unknown creature is a
// no-op.
func (g *SquareGrid) Remove(creatureID string) {
	delete(g.positions, creatureID)
}

// PositionOf returns a creature's square, or (zero, false) if it is not on
// the grid.
func (g *SquareGrid) PositionOf(creatureID string) (Square, bool) {
	sq, ok := g.positions[creatureID]
	return sq, ok
}

func (g *SquareGrid) inBounds(sq Square) bool {
	return sq.X >= 0 && sq.X < g.width && sq.Y >= 0 && sq.Y < g.height
}

// ValidatePath checks contiguity, bounds, and blocked squares.
//
// Postcondition: a nil return means Cost(path) is meaningful and the mover can
// legally occupy every square after the first.
func (g *SquareGrid) ValidatePath(path []Square) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	for i, sq := range path {
		if !g.inBounds(sq) {
			return fmt.Errorf("square %d (%d,%d): %w", i, sq.X, sq.Y, ErrOutOfBounds)
		}
		if i == 0 {
			continue
		}
		if _, bad := g.blocked[sq]; bad {
			return fmt.Errorf("square %d (%d,%d): %w", i, sq.X, sq.Y, ErrBlocked)
		}
		if !path[i-1].adjacent(sq) {
			return fmt.Errorf("square %d (%d,%d) after (%d,%d): %w", i, sq.X, sq.Y, path[i-1].X, path[i-1].Y, ErrDiscontiguous)
		}
	}
	return nil
}

// Cost returns 5 feet per square entered; the origin square is free.
func (g *SquareGrid) Cost(path []Square) int {
	if len(path) < 2 {
		return 0
	}
	return (len(path) - 1) * FeetPerSquare
}

// ThreatsAt returns creatures adjacent to sq, excluding the mover, sorted by
// ID so repeated evaluation yields a stable order.
func (g *SquareGrid) ThreatsAt(sq Square, moverID string) []string {
	var out []string
	for id, pos := range g.positions {
		if id == moverID {
			continue
		}
		if pos.adjacent(sq) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
