package policy

import (
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
)

// IsHealthWell matches any health well
func IsHealthWell(c core.Cell) bool {
	return c.IsHealthWell()
}

// IsEmpty matches unoccupied cells
func IsEmpty(c core.Cell) bool {
	return c.IsEmpty()
}

// NonTeamDiamondMine matches mines that are unowned or held by another team
func NonTeamDiamondMine(team int) search.Predicate {
	return func(c core.Cell) bool {
		if !c.IsDiamondMine() {
			return false
		}
		return !c.Resource.Owned || c.Resource.Owner.Team != team
	}
}

// UnownedDiamondMine matches mines not held by heroID itself. Mines held by
// teammates count.
func UnownedDiamondMine(heroID string) search.Predicate {
	return func(c core.Cell) bool {
		if !c.IsDiamondMine() {
			return false
		}
		return !c.Resource.Owned || c.Resource.Owner.UnitID != heroID
	}
}

// Enemy matches units of any other team
func Enemy(team int) search.Predicate {
	return func(c core.Cell) bool {
		return c.IsUnit() && c.Unit.Team != team
	}
}

// WeakerEnemy matches enemies with strictly less health than health
func WeakerEnemy(team, health int) search.Predicate {
	return func(c core.Cell) bool {
		return c.IsUnit() && c.Unit.Team != team && c.Unit.Health < health
	}
}

// EnemyAtOrBelow matches enemies whose health is at most health
func EnemyAtOrBelow(team, health int) search.Predicate {
	return func(c core.Cell) bool {
		return c.IsUnit() && c.Unit.Team != team && c.Unit.Health <= health
	}
}

// TeamMember matches units of the same team
func TeamMember(team int) search.Predicate {
	return func(c core.Cell) bool {
		return c.IsUnit() && c.Unit.Team == team
	}
}
