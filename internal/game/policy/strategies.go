package policy

import (
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
)

// Strategy picks a move for one decision
type Strategy func(s State, h *Helpers) Move

// Aggressor attacks the nearest enemy, healing when badly hurt
func Aggressor(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		if s.Hero.Health <= t.AggressorRetreat {
			return Toward(h.NearestHealthWell())
		}
		return Toward(h.NearestEnemy())
	}
}

// HealthNut mines diamonds but heals at the first sign of damage
func HealthNut(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		if s.Hero.Health <= t.HealthNutRetreat {
			return Toward(h.NearestHealthWell())
		}
		return Toward(h.NearestNonTeamDiamondMine())
	}
}

// Balanced never moves
func Balanced(Thresholds) Strategy {
	return func(State, *Helpers) Move { return Stay }
}

// Northerner always walks North
func Northerner(Thresholds) Strategy {
	return func(State, *Helpers) Move { return North }
}

// BlindMan walks in a random cardinal direction
func BlindMan(Thresholds) Strategy {
	return func(s State, _ *Helpers) Move {
		if s.RNG == nil {
			return Stay
		}
		return MoveFor(core.Directions[s.RNG.Intn(len(core.Directions))])
	}
}

// Priest stays close to teammates
func Priest(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		if s.Hero.Health < t.PriestRetreat {
			return Toward(h.NearestHealthWell())
		}
		return Toward(h.NearestTeamMember())
	}
}

// UnwiseAssassin chases the nearest enemy regardless of its health
func UnwiseAssassin(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		if s.Hero.Health < t.UnwiseAssassinRetreat {
			return Toward(h.NearestHealthWell())
		}
		return Toward(h.NearestEnemy())
	}
}

// CarefulAssassin only chases enemies weaker than itself
func CarefulAssassin(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		if s.Hero.Health < t.CarefulAssassinRetreat {
			return Toward(h.NearestHealthWell())
		}
		return Toward(h.NearestWeakerEnemy())
	}
}

// SafeDiamondMiner captures mines held by other teams
func SafeDiamondMiner(t Thresholds) Strategy {
	return miner(t, (*Helpers).NearestNonTeamDiamondMine)
}

// SelfishDiamondMiner captures any mine it does not hold, teammates' included
func SelfishDiamondMiner(t Thresholds) Strategy {
	return miner(t, (*Helpers).NearestUnownedDiamondMine)
}

// miner heals when low, tops up when a well is adjacent, and mines otherwise
func miner(t Thresholds, mine func(*Helpers) search.Result) Strategy {
	return func(s State, h *Helpers) Move {
		well := h.NearestHealthWell()
		if s.Hero.Health < t.MinerRetreat {
			return Toward(well)
		}
		if s.Hero.Health < core.MaxHealth && well.Found && well.Distance == 1 {
			return Toward(well)
		}
		return Toward(mine(h))
	}
}

// Coward lives next to health wells
func Coward(Thresholds) Strategy {
	return func(_ State, h *Helpers) Move {
		return Toward(h.NearestHealthWell())
	}
}

// Dslaugh hunts the nearest enemy and heads for a well when none can be
// reached. With neither in reach it repeats its previous move.
func Dslaugh(Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		if res := h.NearestEnemy(); res.Found {
			return MoveFor(res.Direction)
		}
		if res := h.NearestHealthWell(); res.Found {
			return MoveFor(res.Direction)
		}
		if s.LastMove == "" {
			return Stay
		}
		return s.LastMove
	}
}

// Raypoly never searches, it only reads its four neighbors. It hits an
// adjacent enemy when healthy enough, otherwise steps onto a well or an
// empty cell. A weak hero with no way out stays; any other boxed-in hero
// walks South.
func Raypoly(t Thresholds) Strategy {
	return func(s State, h *Helpers) Move {
		around := h.WhatsAround()
		enemies := around.Filter(Enemy(s.Hero.Team))

		if len(enemies) > 0 && s.Hero.Health >= t.RaypolyAttack {
			return MoveFor(enemies[0])
		}
		if wells := around.Filter(IsHealthWell); len(wells) > 0 {
			return MoveFor(wells[0])
		}
		if empty := around.Filter(IsEmpty); len(empty) > 0 {
			return MoveFor(empty[0])
		}
		if len(enemies) > 0 {
			return Stay
		}
		return South
	}
}
