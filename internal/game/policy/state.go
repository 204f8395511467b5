package policy

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
)

// State is everything a strategy may look at for one decision
type State struct {
	Board  *core.Board
	Origin core.Coordinate
	Hero   core.Unit
	// RNG is owned by this decision; strategies may draw from it freely.
	RNG *rand.Rand
	// LastMove is what this hero was told to do on its previous decision,
	// Stay when there was none.
	LastMove Move
}

// NewState checks that origin holds a unit and captures it as the hero
func NewState(board *core.Board, origin core.Coordinate, rng *rand.Rand) (State, error) {
	if board == nil {
		return State{}, ErrNoBoard
	}
	cell, err := board.CellAt(origin)
	if err != nil {
		return State{}, err
	}
	if !cell.IsUnit() {
		return State{}, fmt.Errorf("%s holds %s: %w", origin, cell.Kind, ErrNoActiveUnit)
	}
	return State{Board: board, Origin: origin, Hero: cell.Unit, RNG: rng, LastMove: Stay}, nil
}

// Finder is the search capability strategies consume. *search.Searcher
// implements it.
type Finder interface {
	FindNearest(b *core.Board, origin core.Coordinate, pred search.Predicate) search.Result
}

var _ Finder = (*search.Searcher)(nil)
