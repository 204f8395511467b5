package search

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

// Result is the outcome of a nearest-match search. The zero value means
// nothing matched. When Found is set, Direction is the first step out of
// the origin on a shortest path and Distance is the number of steps to the
// matched cell (always at least 1).
type Result struct {
	Found     bool
	Cell      core.Cell
	Direction core.Direction
	Distance  int
	// Explored counts the cells admitted to the search tree, origin included.
	Explored int
}

// NotFound is the empty result
var NotFound = Result{}

// FailureHook observes predicates that returned an error or panicked
type FailureHook func(cell core.Cell, err error)

// Searcher runs breadth-first nearest-match searches. It keeps no
// per-search state, so one Searcher may serve concurrent callers.
type Searcher struct {
	logger          zerolog.Logger
	iterationFactor int
	onFailure       FailureHook
}

// Option configures a Searcher
type Option func(*Searcher)

// WithLogger replaces the component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// WithIterationFactor sets the guard on dequeued cells to factor·N².
// Values below 1 are ignored.
func WithIterationFactor(factor int) Option {
	return func(s *Searcher) {
		if factor >= 1 {
			s.iterationFactor = factor
		}
	}
}

// WithFailureHook registers a callback for failing predicates
func WithFailureHook(hook FailureHook) Option {
	return func(s *Searcher) {
		s.onFailure = hook
	}
}

// New creates a Searcher
func New(opts ...Option) *Searcher {
	s := &Searcher{
		logger:          log.With().Str("component", "search").Logger(),
		iterationFactor: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindNearest searches with a default Searcher
func FindNearest(b *core.Board, origin core.Coordinate, pred Predicate) Result {
	return New().FindNearest(b, origin, pred)
}

// FindNearest returns the BFS-nearest cell satisfying pred, starting from
// origin. The origin itself is never tested. Only empty cells are walked
// through; an occupied cell can be the goal but never a waypoint.
// Neighbors are expanded North, East, South, West, which settles ties.
func (s *Searcher) FindNearest(b *core.Board, origin core.Coordinate, pred Predicate) Result {
	if pred == nil {
		return NotFound
	}
	return s.search(b, origin, func(c core.Cell) (bool, error) { return pred(c), nil })
}

// FindNearestFallible is FindNearest for predicates that report errors.
// A cell whose predicate errors is treated as a non-match.
func (s *Searcher) FindNearestFallible(b *core.Board, origin core.Coordinate, pred FalliblePredicate) Result {
	if pred == nil {
		return NotFound
	}
	return s.search(b, origin, pred)
}

// step is the arena record for a cell admitted to the search tree
type step struct {
	parent core.Coordinate
	dir    core.Direction
	start  bool
}

func (s *Searcher) search(b *core.Board, origin core.Coordinate, goal FalliblePredicate) Result {
	if b == nil || !b.IsValid(origin) {
		s.logger.Warn().
			Str("origin", origin.String()).
			Msg("Search origin is not on the board")
		return NotFound
	}

	tree := map[core.Coordinate]step{origin: {start: true}}
	queue := []core.Coordinate{origin}
	limit := s.iterationFactor * b.N * b.N

	for head := 0; head < len(queue); head++ {
		// Every coordinate is admitted at most once, so with a factor of at
		// least 1 this never trips; it only bounds the loop.
		if head >= limit {
			s.logger.Warn().
				Str("origin", origin.String()).
				Int("limit", limit).
				Int("explored", len(tree)).
				Msg("Search iteration cap reached, board may be malformed")
			return Result{Explored: len(tree)}
		}

		current := queue[head]
		for _, d := range core.Directions {
			next, ok := b.Neighbor(current, d)
			if !ok {
				continue
			}
			at := current.Move(d)
			if _, seen := tree[at]; seen {
				continue
			}

			if s.evaluate(goal, next) {
				dir, dist := firstStep(tree, current, d)
				s.logger.Debug().
					Str("origin", origin.String()).
					Str("goal", at.String()).
					Str("direction", dir.String()).
					Int("distance", dist).
					Int("explored", len(tree)).
					Msg("Search matched")
				return Result{
					Found:     true,
					Cell:      next,
					Direction: dir,
					Distance:  dist,
					Explored:  len(tree),
				}
			}

			if next.IsEmpty() {
				tree[at] = step{parent: current, dir: d}
				queue = append(queue, at)
			}
		}
	}

	s.logger.Debug().
		Str("origin", origin.String()).
		Int("explored", len(tree)).
		Msg("Search found nothing")
	return Result{Explored: len(tree)}
}

// firstStep walks parent links from the cell the goal was reached from
// back to the origin. last is the step that reached the goal.
func firstStep(tree map[core.Coordinate]step, from core.Coordinate, last core.Direction) (core.Direction, int) {
	dir, dist := last, 1
	at := from
	for hops := 0; hops <= len(tree); hops++ {
		st := tree[at]
		if st.start {
			break
		}
		dir = st.dir
		dist++
		at = st.parent
	}
	return dir, dist
}

// evaluate runs the goal test, turning errors and panics into a non-match
func (s *Searcher) evaluate(goal FalliblePredicate, cell core.Cell) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(cell, fmt.Errorf("%w: %v", ErrPredicatePanic, r))
			matched = false
		}
	}()

	ok, err := goal(cell)
	if err != nil {
		s.fail(cell, err)
		return false
	}
	return ok
}

func (s *Searcher) fail(cell core.Cell, err error) {
	s.logger.Debug().
		Err(err).
		Str("cell", cell.Coord().String()).
		Msg("Predicate failed, treating cell as non-match")
	if s.onFailure != nil {
		s.onFailure(cell, err)
	}
}
