package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/testutil"
)

// stubFinder answers every search with the same result
type stubFinder struct {
	result search.Result
	calls  int
}

func (f *stubFinder) FindNearest(*core.Board, core.Coordinate, search.Predicate) search.Result {
	f.calls++
	return f.result
}

func TestHelpers_ObserveSearches(t *testing.T) {
	board, origin := testutil.BoardFromRows(t,
		"...",
		".@.",
		"...",
	)
	state, err := NewState(board, origin, nil)
	require.NoError(t, err)

	finder := &stubFinder{result: search.Result{Found: true, Direction: core.East, Distance: 3}}
	var targets []string
	h := NewHelpers(finder, state, func(target string, from core.Coordinate, res search.Result) {
		assert.Equal(t, origin, from)
		assert.True(t, res.Found)
		targets = append(targets, target)
	})

	h.NearestHealthWell()
	h.NearestEnemy()
	h.NearestWeakerEnemy()
	h.NearestTeamMember()
	h.NearestNonTeamDiamondMine()
	h.NearestUnownedDiamondMine()

	assert.Equal(t, 6, h.Searches())
	assert.Equal(t, 6, finder.calls)
	assert.Equal(t, []string{
		TargetHealthWell,
		TargetEnemy,
		TargetWeakerEnemy,
		TargetTeamMember,
		TargetNonTeamDiamondMine,
		TargetUnownedDiamondMine,
	}, targets)
}

func TestHelpers_WhatsAround(t *testing.T) {
	board, origin := testutil.BoardFromRows(t,
		"@W",
		"E.",
	)
	state, err := NewState(board, origin, nil)
	require.NoError(t, err)

	around := NewHelpers(search.New(), state, nil).WhatsAround()
	assert.Equal(t, []core.Direction{core.East}, around.Filter(IsHealthWell))
	assert.Equal(t, []core.Direction{core.South}, around.Filter(Enemy(0)))
	_, ok := around.In(core.North)
	assert.False(t, ok)
}

func TestToward(t *testing.T) {
	assert.Equal(t, Stay, Toward(search.NotFound))
	assert.Equal(t, South, Toward(search.Result{Found: true, Direction: core.South, Distance: 1}))
}

func TestNewState(t *testing.T) {
	board, origin := testutil.BoardFromRowsWithHealth(t, 42,
		"W.",
		".@",
	)

	state, err := NewState(board, origin, nil)
	require.NoError(t, err)
	assert.Equal(t, testutil.HeroID, state.Hero.ID)
	assert.Equal(t, 42, state.Hero.Health)

	_, err = NewState(board, core.Coordinate{Row: 0, Col: 0}, nil)
	assert.ErrorIs(t, err, ErrNoActiveUnit)

	_, err = NewState(board, core.Coordinate{Row: 5, Col: 0}, nil)
	assert.ErrorIs(t, err, core.ErrOutOfRange)

	_, err = NewState(nil, origin, nil)
	assert.ErrorIs(t, err, ErrNoBoard)
}
