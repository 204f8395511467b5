package core

import (
	"fmt"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/common"
)

// Coordinate represents a position on the board. Row counts down from the
// top edge, Col counts right from the left edge.
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a row-major index on a board of side n
func FromIndex(idx, n int) Coordinate {
	return Coordinate{
		Row: idx / n,
		Col: idx % n,
	}
}

// ToIndex converts the coordinate to a row-major index on a board of side n
func (c Coordinate) ToIndex(n int) int {
	return c.Row*n + c.Col
}

// InSquare checks if the coordinate lies on a square board of side n
func (c Coordinate) InSquare(n int) bool {
	return c.Row >= 0 && c.Row < n && c.Col >= 0 && c.Col < n
}

// DistanceTo calculates the Manhattan distance to another coordinate
func (c Coordinate) DistanceTo(other Coordinate) int {
	return common.Abs(c.Row-other.Row) + common.Abs(c.Col-other.Col)
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	return c.DistanceTo(other) == 1
}

// Add returns the component-wise sum of two coordinates
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(d Direction) Coordinate {
	return c.Add(d.Offset())
}

// DirectionTo returns the direction from this coordinate to an adjacent one.
// The boolean is false when the coordinates are not adjacent.
func (c Coordinate) DirectionTo(other Coordinate) (Direction, bool) {
	for _, d := range Directions {
		if c.Move(d) == other {
			return d, true
		}
	}
	return North, false
}

// Key returns the "row|col" form used in logs and snapshots
func (c Coordinate) Key() string {
	return fmt.Sprintf("%d|%d", c.Row, c.Col)
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction represents a cardinal direction
type Direction int

// The declaration order is the canonical expansion order.
const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in canonical order
var Directions = [4]Direction{North, East, South, West}

var directionOffsets = [4]Coordinate{
	North: {Row: -1, Col: 0},
	East:  {Row: 0, Col: 1},
	South: {Row: 1, Col: 0},
	West:  {Row: 0, Col: -1},
}

var directionNames = [4]string{
	North: "North",
	East:  "East",
	South: "South",
	West:  "West",
}

// Valid reports whether d is one of the four cardinal directions
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// Offset returns the (row, col) delta of one step in this direction.
// An invalid direction yields a zero offset.
func (d Direction) Offset() Coordinate {
	if !d.Valid() {
		return Coordinate{}
	}
	return directionOffsets[d]
}

// Opposite returns the direction pointing the other way
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection converts a direction name (case-sensitive, as produced by
// String) back into a Direction.
func ParseDirection(s string) (Direction, error) {
	for d, name := range directionNames {
		if name == s {
			return Direction(d), nil
		}
	}
	return North, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}
