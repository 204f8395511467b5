package search

import "github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"

// Predicate is a goal test evaluated against candidate cells
type Predicate func(core.Cell) bool

// FalliblePredicate is a goal test that may fail. A failure counts as a
// non-match for that cell.
type FalliblePredicate func(core.Cell) (bool, error)

// Not inverts a predicate
func Not(p Predicate) Predicate {
	return func(c core.Cell) bool { return !p(c) }
}

// All matches when every predicate matches. All() matches everything.
func All(ps ...Predicate) Predicate {
	return func(c core.Cell) bool {
		for _, p := range ps {
			if !p(c) {
				return false
			}
		}
		return true
	}
}

// Any matches when at least one predicate matches
func Any(ps ...Predicate) Predicate {
	return func(c core.Cell) bool {
		for _, p := range ps {
			if p(c) {
				return true
			}
		}
		return false
	}
}

// At matches exactly one coordinate
func At(target core.Coordinate) Predicate {
	return func(c core.Cell) bool { return c.Coord() == target }
}
