package policy

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/testutil"
)

// recorder collects published events
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ofType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func sampleSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Size:   5,
		Active: "hero",
		Units: []snapshot.Unit{
			{ID: "hero", Team: 0, Health: 20, Row: 2, Col: 2},
			{ID: "rival", Team: 1, Health: 90, Row: 4, Col: 2},
		},
		Resources: []snapshot.Resource{
			{Kind: snapshot.KindHealthWell, Row: 0, Col: 2},
		},
	}
}

func TestNewAgent(t *testing.T) {
	a, err := NewAgent("aggressor", WithLogger(testutil.Logger(t)))
	require.NoError(t, err)
	assert.Equal(t, "aggressor", a.Name())
	assert.NotEmpty(t, a.SessionID())

	b, err := NewAgent("aggressor", WithLogger(testutil.Logger(t)))
	require.NoError(t, err)
	assert.NotEqual(t, a.SessionID(), b.SessionID())

	_, err = NewAgent("ambusher")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	bad := DefaultThresholds()
	bad.AggressorRetreat = 500
	_, err = NewAgent("aggressor", WithThresholds(bad))
	assert.ErrorIs(t, err, core.ErrInvalidHealth)
}

func TestAgent_Decide(t *testing.T) {
	rec := &recorder{}
	a, err := NewAgent("aggressor",
		WithLogger(testutil.Logger(t)),
		WithEventBus(rec),
		WithSessionID("session-1"),
	)
	require.NoError(t, err)

	d, err := a.Decide(sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, North, d.Move, "hurt aggressor heads for the well")
	assert.Equal(t, "hero", d.HeroID)
	assert.Equal(t, "aggressor", d.Strategy)
	assert.Equal(t, "session-1", d.SessionID)
	assert.Equal(t, core.Coordinate{Row: 2, Col: 2}, d.Origin)
	assert.Equal(t, 1, d.Searches)

	decisions := rec.ofType(events.TypeDecisionMade)
	require.Len(t, decisions, 1)
	made := decisions[0].(*events.DecisionMadeEvent)
	assert.Equal(t, "North", made.Move)
	assert.Equal(t, "session-1", made.SessionID())

	searches := rec.ofType(events.TypeSearchCompleted)
	require.Len(t, searches, 1)
	done := searches[0].(*events.SearchCompletedEvent)
	assert.Equal(t, TargetHealthWell, done.Target)
	assert.True(t, done.Found)
	assert.Equal(t, core.Coordinate{Row: 0, Col: 2}, done.Goal)
	assert.Equal(t, 2, done.Distance)
}

func TestAgent_DecideErrors(t *testing.T) {
	a, err := NewAgent("coward", WithLogger(testutil.Logger(t)))
	require.NoError(t, err)

	_, err = a.Decide(nil)
	assert.ErrorIs(t, err, ErrNoBoard)

	broken := sampleSnapshot()
	broken.Active = "nobody"
	_, err = a.Decide(broken)
	assert.ErrorIs(t, err, snapshot.ErrInvalidSnapshot)

	_, err = a.DecideOn(nil, core.Coordinate{})
	assert.ErrorIs(t, err, ErrNoBoard)

	board, _ := testutil.BoardFromRows(t, "@.", "..")
	_, err = a.DecideOn(board, core.Coordinate{Row: 1, Col: 1})
	assert.ErrorIs(t, err, ErrNoActiveUnit)

	board.Tiles = board.Tiles[:1]
	_, err = a.DecideOn(board, core.Coordinate{})
	assert.ErrorIs(t, err, core.ErrMalformedBoard)
}

func TestAgent_SeedIsReproducible(t *testing.T) {
	board, origin := testutil.BoardFromRows(t,
		"...",
		".@.",
		"...",
	)

	run := func() []Move {
		a, err := NewAgent("blind_man", WithLogger(testutil.Logger(t)), WithSeed(99))
		require.NoError(t, err)
		var moves []Move
		for i := 0; i < 20; i++ {
			d, err := a.DecideOn(board, origin)
			require.NoError(t, err)
			moves = append(moves, d.Move)
		}
		return moves
	}

	assert.Equal(t, run(), run())
}

func TestAgent_ConcurrentDecisions(t *testing.T) {
	rec := &recorder{}
	a, err := NewAgent("tactician", WithLogger(testutil.Logger(t)), WithEventBus(rec))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := a.Decide(sampleSnapshot())
			assert.NoError(t, err)
			assert.Equal(t, North, d.Move)
		}()
	}
	wg.Wait()

	assert.Len(t, rec.ofType(events.TypeDecisionMade), 8)
}

func TestAgent_PredicateFailurePublished(t *testing.T) {
	rec := &recorder{}
	a, err := NewAgent("coward", WithLogger(testutil.Logger(t)), WithEventBus(rec), WithSessionID("s"))
	require.NoError(t, err)

	board, origin := testutil.BoardFromRows(t, "@.", "..")
	res := a.searcher.FindNearest(board, origin, func(c core.Cell) bool {
		if c.Coord() == (core.Coordinate{Row: 0, Col: 1}) {
			panic("boom")
		}
		return false
	})
	assert.False(t, res.Found)

	failed := rec.ofType(events.TypePredicateFailed)
	require.Len(t, failed, 1)
	ev := failed[0].(*events.PredicateFailedEvent)
	assert.Equal(t, core.Coordinate{Row: 0, Col: 1}, ev.Cell)
	assert.Contains(t, ev.Error, "boom")
}

func TestAgent_WithEventBus(t *testing.T) {
	bus := events.NewEventBus()
	var moves []string
	_, err := bus.SubscribeFunc(events.TypeDecisionMade, func(e events.Event) {
		moves = append(moves, e.(*events.DecisionMadeEvent).Move)
	})
	require.NoError(t, err)

	a, err := NewAgent("northerner", WithLogger(testutil.Logger(t)), WithEventBus(bus))
	require.NoError(t, err)
	_, err = a.Decide(sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, []string{"North"}, moves)
}

func TestAgent_RemembersLastMovePerHero(t *testing.T) {
	a, err := NewAgent("dslaugh", WithLogger(testutil.Logger(t)))
	require.NoError(t, err)

	hunting, origin := testutil.BoardFromRows(t,
		"...",
		".@E",
		"...",
	)
	d, err := a.DecideOn(hunting, origin)
	require.NoError(t, err)
	assert.Equal(t, East, d.Move)

	empty, origin := testutil.BoardFromRows(t,
		"...",
		".@.",
		"...",
	)
	d, err = a.DecideOn(empty, origin)
	require.NoError(t, err)
	assert.Equal(t, East, d.Move, "nothing in reach, previous move repeated")

	other := core.NewBoard(3)
	require.NoError(t, other.PlaceUnit(core.Coordinate{Row: 1, Col: 1}, core.Unit{ID: "other", Health: 100}))
	d, err = a.DecideOn(other, core.Coordinate{Row: 1, Col: 1})
	require.NoError(t, err)
	assert.Equal(t, Stay, d.Move, "a hero with no history stays")
}
