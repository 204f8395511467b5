package policy

import (
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
)

// approach scores stepping onto one empty neighbor
type approach struct {
	dir      core.Direction
	enemies  int
	wells    int
	nearDead bool
}

// Tactician reads the cells around it before falling back to searches.
// In order it prefers: finishing an adjacent enemy, stepping next to a
// nearly dead enemy, topping up at an adjacent well, retreating when hurt,
// then fighting near wells, then chasing enemies, mines and wells.
func Tactician(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		around := h.WhatsAround()
		team := s.Hero.Team

		if d, ok := weakestAdjacent(around, EnemyAtOrBelow(team, t.FinishOff)); ok {
			return MoveFor(d)
		}

		scores := lookahead(s, around, t.LookaheadFinishOff)
		var kills []core.Direction
		for _, a := range scores {
			if a.nearDead {
				kills = append(kills, a.dir)
			}
		}
		if len(kills) > 0 {
			if d, ok := bestApproach(scores, kills); ok {
				return MoveFor(d)
			}
			return MoveFor(kills[0])
		}

		if s.Hero.Health < core.MaxHealth && len(around.Filter(IsHealthWell)) > 0 {
			return Toward(h.NearestHealthWell())
		}
		if s.Hero.Health < t.TacticianRetreat {
			return Toward(h.NearestHealthWell())
		}

		if d, ok := bestApproach(scores, nil); ok {
			return MoveFor(d)
		}
		if d, ok := weakestAdjacent(around, Enemy(team)); ok {
			return MoveFor(d)
		}

		for _, find := range []func() search.Result{
			h.NearestEnemy,
			h.NearestUnownedDiamondMine,
			h.NearestHealthWell,
		} {
			if res := find(); res.Found {
				return MoveFor(res.Direction)
			}
		}
		return Stay
	}
}

// lookahead scores each empty neighbor by what surrounds it
func lookahead(s State, around core.Surroundings, finishOff int) []approach {
	enemy := Enemy(s.Hero.Team)
	var scores []approach
	for _, dir := range around.Filter(IsEmpty) {
		step, _ := around.In(dir)
		a := approach{dir: dir}
		for _, c := range s.Board.Ring(step.Coord()) {
			switch {
			case enemy(c):
				a.enemies++
				if c.Unit.Health <= finishOff {
					a.nearDead = true
				}
			case c.IsHealthWell():
				a.wells++
			}
		}
		scores = append(scores, a)
	}
	return scores
}

// bestApproach returns the first step, in canonical order, that borders
// both an enemy and a health well. A non-nil limit restricts the choice.
func bestApproach(scores []approach, limit []core.Direction) (core.Direction, bool) {
	for _, a := range scores {
		if limit != nil && !containsDirection(limit, a.dir) {
			continue
		}
		if a.enemies > 0 && a.wells > 0 {
			return a.dir, true
		}
	}
	return core.North, false
}

// weakestAdjacent returns the direction of the lowest-health neighbor
// matching pred. Ties go to the earlier direction.
func weakestAdjacent(around core.Surroundings, pred search.Predicate) (core.Direction, bool) {
	best, found := core.North, false
	lowest := core.MaxHealth + 1
	for _, dir := range around.Filter(pred) {
		c, _ := around.In(dir)
		if c.IsUnit() && c.Unit.Health < lowest {
			best, lowest, found = dir, c.Unit.Health, true
		}
	}
	return best, found
}

func containsDirection(dirs []core.Direction, d core.Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}
