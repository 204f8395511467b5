package core

// Neighbor returns the cell one step from origin in direction d. The
// boolean is false when that step leaves the board; a missing neighbor at
// the edge is an ordinary outcome, not an error.
func (b *Board) Neighbor(origin Coordinate, d Direction) (Cell, bool) {
	next := origin.Move(d)
	if !d.Valid() || !b.IsValid(next) {
		return Cell{}, false
	}
	return b.Tiles[next.Row][next.Col], true
}

// Adjacent is one entry of a Surroundings listing
type Adjacent struct {
	Direction Direction
	Cell      Cell
	OK        bool
}

// Surroundings lists the four neighbors of a coordinate in canonical order
type Surroundings [4]Adjacent

// Surroundings resolves every neighbor of origin
func (b *Board) Surroundings(origin Coordinate) Surroundings {
	var s Surroundings
	for i, d := range Directions {
		cell, ok := b.Neighbor(origin, d)
		s[i] = Adjacent{Direction: d, Cell: cell, OK: ok}
	}
	return s
}

// In returns the neighbor in direction d
func (s Surroundings) In(d Direction) (Cell, bool) {
	if !d.Valid() {
		return Cell{}, false
	}
	a := s[d]
	return a.Cell, a.OK
}

// Filter returns the directions whose in-bounds neighbor satisfies keep,
// in canonical order
func (s Surroundings) Filter(keep func(Cell) bool) []Direction {
	var dirs []Direction
	for _, a := range s {
		if a.OK && keep(a.Cell) {
			dirs = append(dirs, a.Direction)
		}
	}
	return dirs
}

// ringOffsets walks the eight surrounding cells clockwise from the north-west
var ringOffsets = [8]Coordinate{
	{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: 1},
	{Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: -1}, {Row: 0, Col: -1},
}

// Ring returns the in-bounds cells of the 8-neighborhood around origin,
// clockwise from the north-west corner
func (b *Board) Ring(origin Coordinate) []Cell {
	ring := make([]Cell, 0, len(ringOffsets))
	for _, off := range ringOffsets {
		at := origin.Add(off)
		if b.IsValid(at) {
			ring = append(ring, b.Tiles[at.Row][at.Col])
		}
	}
	return ring
}
