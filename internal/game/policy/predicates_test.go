package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

func unitCell(id string, team, health int) core.Cell {
	return core.Cell{Kind: core.OccupantUnit, Unit: core.Unit{ID: id, Team: team, Health: health}}
}

func mineCell(owned bool, owner core.Owner) core.Cell {
	return core.Cell{Kind: core.OccupantResource, Resource: core.Resource{
		Kind:  core.ResourceDiamondMine,
		Owned: owned,
		Owner: owner,
	}}
}

func TestPredicates(t *testing.T) {
	empty := core.Cell{}
	well := core.Cell{Kind: core.OccupantResource, Resource: core.Resource{Kind: core.ResourceHealthWell}}
	free := mineCell(false, core.Owner{})
	ours := mineCell(true, core.Owner{UnitID: "hero", Team: 0})
	buddy := mineCell(true, core.Owner{UnitID: "buddy", Team: 0})
	theirs := mineCell(true, core.Owner{UnitID: "rival", Team: 1})
	friend := unitCell("buddy", 0, 40)
	enemy := unitCell("rival", 1, 60)
	weak := unitCell("weak", 1, 20)

	tests := []struct {
		name string
		pred func(core.Cell) bool
		yes  []core.Cell
		no   []core.Cell
	}{
		{"health well", IsHealthWell, []core.Cell{well}, []core.Cell{empty, free, friend}},
		{"empty", IsEmpty, []core.Cell{empty}, []core.Cell{well, enemy}},
		{"non-team mine", NonTeamDiamondMine(0), []core.Cell{free, theirs}, []core.Cell{ours, buddy, well, enemy}},
		{"unowned mine", UnownedDiamondMine("hero"), []core.Cell{free, theirs, buddy}, []core.Cell{ours, well, friend}},
		{"enemy", Enemy(0), []core.Cell{enemy, weak}, []core.Cell{friend, theirs, empty}},
		{"weaker enemy", WeakerEnemy(0, 60), []core.Cell{weak}, []core.Cell{enemy, friend}},
		{"enemy at or below", EnemyAtOrBelow(0, 20), []core.Cell{weak}, []core.Cell{enemy, unitCell("f", 0, 5)}},
		{"team member", TeamMember(0), []core.Cell{friend}, []core.Cell{enemy, ours}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, c := range tt.yes {
				assert.True(t, tt.pred(c), "%+v", c)
			}
			for _, c := range tt.no {
				assert.False(t, tt.pred(c), "%+v", c)
			}
		})
	}
}
