package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

const sampleYAML = `
size: 5
active: hero-1
units:
  - {id: hero-1, team: 0, health: 80, row: 2, col: 2}
  - {id: hero-2, team: 1, health: 40, row: 0, col: 0}
resources:
  - {kind: diamond_mine, row: 0, col: 2, owner: hero-2}
  - {kind: diamond_mine, row: 4, col: 0, owner: ghost, owner_team: 3}
  - {kind: diamond_mine, row: 3, col: 3}
  - {kind: health_well, row: 4, col: 4}
`

func TestParseAndBuild(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, 5, s.Size)
	assert.Equal(t, "hero-1", s.Active)
	assert.Len(t, s.Units, 2)
	assert.Len(t, s.Resources, 4)

	board, active, err := s.Build()
	require.NoError(t, err)
	require.NoError(t, board.Validate())
	assert.Equal(t, core.Coordinate{Row: 2, Col: 2}, active)

	hero := board.Tiles[2][2]
	require.True(t, hero.IsUnit())
	assert.Equal(t, core.Unit{ID: "hero-1", Team: 0, Health: 80}, hero.Unit)

	owned := board.Tiles[0][2]
	require.True(t, owned.IsDiamondMine())
	assert.True(t, owned.Resource.Owned)
	assert.Equal(t, core.Owner{UnitID: "hero-2", Team: 1}, owned.Resource.Owner, "owner team comes from the unit")

	ghost := board.Tiles[4][0]
	assert.Equal(t, core.Owner{UnitID: "ghost", Team: 3}, ghost.Resource.Owner)

	assert.False(t, board.Tiles[3][3].Resource.Owned)
	assert.True(t, board.Tiles[4][4].IsHealthWell())
	assert.True(t, board.Tiles[1][1].IsEmpty())
}

func TestParseJSON(t *testing.T) {
	doc := `{"size": 2, "active": "a", "units": [{"id": "a", "team": 0, "health": 100, "row": 1, "col": 1}],
		"resources": [{"kind": "health_well", "row": 0, "col": 0}]}`

	s, err := Parse([]byte(doc))
	require.NoError(t, err)

	board, active, err := s.Build()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{Row: 1, Col: 1}, active)
	assert.True(t, board.Tiles[0][0].IsHealthWell())
}

func TestValidate_Errors(t *testing.T) {
	team := 1
	base := func() Snapshot {
		return Snapshot{
			Size:   3,
			Active: "a",
			Units:  []Unit{{ID: "a", Health: 50, Row: 1, Col: 1}},
		}
	}

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"zero size", func(s *Snapshot) { s.Size = 0 }},
		{"oversized", func(s *Snapshot) { s.Size = DefaultMaxSize + 1 }},
		{"unit off board", func(s *Snapshot) { s.Units[0].Row = 3 }},
		{"negative coordinate", func(s *Snapshot) { s.Units[0].Col = -1 }},
		{"missing id", func(s *Snapshot) { s.Units[0].ID = "" }},
		{"health too high", func(s *Snapshot) { s.Units[0].Health = 101 }},
		{"health negative", func(s *Snapshot) { s.Units[0].Health = -1 }},
		{"duplicate id", func(s *Snapshot) {
			s.Units = append(s.Units, Unit{ID: "a", Health: 1, Row: 0, Col: 0})
		}},
		{"collision", func(s *Snapshot) {
			s.Resources = []Resource{{Kind: KindHealthWell, Row: 1, Col: 1}}
		}},
		{"unknown kind", func(s *Snapshot) {
			s.Resources = []Resource{{Kind: "gold", Row: 0, Col: 0}}
		}},
		{"owned well", func(s *Snapshot) {
			s.Resources = []Resource{{Kind: KindHealthWell, Row: 0, Col: 0, Owner: "a", OwnerTeam: &team}}
		}},
		{"unknown owner", func(s *Snapshot) {
			s.Resources = []Resource{{Kind: KindDiamondMine, Row: 0, Col: 0, Owner: "nobody"}}
		}},
		{"no active", func(s *Snapshot) { s.Active = "" }},
		{"active missing", func(s *Snapshot) { s.Active = "b" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSnapshot)

			_, _, err := s.Build()
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}

	ok := base()
	assert.NoError(t, ok.Validate())
}

func TestParse_RejectsHugeBoard(t *testing.T) {
	doc := `{"size": 35184372088832, "active": "a",
		"units": [{"id": "a", "team": 0, "health": 100, "row": 0, "col": 0}]}`
	_, err := Parse([]byte(doc))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)

	s := &Snapshot{Size: 35184372088832, Active: "a", Units: []Unit{{ID: "a", Health: 100}}}
	assert.NotPanics(t, func() {
		_, _, err = s.Build()
	})
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestSetMaxSize(t *testing.T) {
	t.Cleanup(func() { SetMaxSize(DefaultMaxSize) })

	s := Snapshot{Size: 4, Active: "a", Units: []Unit{{ID: "a", Health: 100}}}
	require.NoError(t, s.Validate())

	SetMaxSize(3)
	assert.Equal(t, 3, MaxSize())
	assert.ErrorIs(t, s.Validate(), ErrInvalidSnapshot)

	SetMaxSize(0)
	assert.Equal(t, DefaultMaxSize, MaxSize())
	assert.NoError(t, s.Validate())
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("size: [not a number"))
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "hero-1", s.Active)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromBoard_RoundTrip(t *testing.T) {
	s, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	board, _, err := s.Build()
	require.NoError(t, err)

	out := FromBoard(board, "hero-1")
	data, err := out.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	rebuilt, active, err := again.Build()
	require.NoError(t, err)

	assert.Equal(t, core.Coordinate{Row: 2, Col: 2}, active)
	assert.Equal(t, board.Tiles, rebuilt.Tiles)
}
