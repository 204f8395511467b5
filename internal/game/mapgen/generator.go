package mapgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/common"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

var ErrNoRoom = errors.New("board too small for requested units")

// MapConfig holds configuration for map generation
type MapConfig struct {
	Size             int
	Teams            int
	UnitsPerTeam     int
	DiamondMineRatio int // 1 mine per N tiles
	HealthWellRatio  int // 1 well per N tiles
	OwnedMinePercent int // chance a mine starts held by some unit
	MinUnitHealth    int
	MinUnitSpacing   int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(size, teams, unitsPerTeam int) MapConfig {
	return MapConfig{
		Size:             size,
		Teams:            teams,
		UnitsPerTeam:     unitsPerTeam,
		DiamondMineRatio: 12,
		HealthWellRatio:  25,
		OwnedMinePercent: 50,
		MinUnitHealth:    10,
		MinUnitSpacing:   2,
	}
}

// Generator handles map generation with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap creates a board with units, mines and wells and picks one
// unit at random to be the active one
func (g *Generator) GenerateMap() (*snapshot.Snapshot, error) {
	if g.config.Size <= 0 {
		return nil, fmt.Errorf("board size %d: %w", g.config.Size, core.ErrMalformedBoard)
	}
	if g.config.Teams*g.config.UnitsPerTeam <= 0 {
		return nil, fmt.Errorf("%d teams of %d units: %w", g.config.Teams, g.config.UnitsPerTeam, ErrNoRoom)
	}

	board := core.NewBoard(g.config.Size)

	placements, err := g.placeUnits(board)
	if err != nil {
		return nil, err
	}
	g.placeResources(board, core.ResourceHealthWell, g.config.HealthWellRatio, placements)
	g.placeResources(board, core.ResourceDiamondMine, g.config.DiamondMineRatio, placements)

	active := placements[g.rng.Intn(len(placements))]
	return snapshot.FromBoard(board, active.ID), nil
}

// UnitPlacement tracks where a unit was placed
type UnitPlacement struct {
	ID    string
	Team  int
	Coord core.Coordinate
}

func (g *Generator) placeUnits(b *core.Board) ([]UnitPlacement, error) {
	want := g.config.Teams * g.config.UnitsPerTeam
	if want > b.N*b.N {
		return nil, fmt.Errorf("%d units on %d tiles: %w", want, b.N*b.N, ErrNoRoom)
	}

	placements := make([]UnitPlacement, 0, want)
	for team := 0; team < g.config.Teams; team++ {
		for n := 0; n < g.config.UnitsPerTeam; n++ {
			at, ok := g.findUnitLocation(b, placements)
			if !ok {
				return nil, fmt.Errorf("placing unit %d of team %d: %w", n, team, ErrNoRoom)
			}

			p := UnitPlacement{ID: fmt.Sprintf("t%d-u%d", team, n), Team: team, Coord: at}
			health := common.Clamp(g.config.MinUnitHealth, core.MinHealth, core.MaxHealth)
			if span := core.MaxHealth - health; span > 0 {
				health += g.rng.Intn(span + 1)
			}
			if err := b.PlaceUnit(at, core.Unit{ID: p.ID, Team: team, Health: health}); err != nil {
				return nil, err
			}
			placements = append(placements, p)
		}
	}
	return placements, nil
}

// findUnitLocation tries random empty cells that respect the spacing, then
// falls back to the first empty cell
func (g *Generator) findUnitLocation(b *core.Board, existing []UnitPlacement) (core.Coordinate, bool) {
	maxAttempts := b.N * b.N

	for attempts := 0; attempts < maxAttempts; attempts++ {
		at := core.Coordinate{Row: g.rng.Intn(b.N), Col: g.rng.Intn(b.N)}
		if !b.Tiles[at.Row][at.Col].IsEmpty() {
			continue
		}

		validLocation := true
		for _, other := range existing {
			if at.DistanceTo(other.Coord) < g.config.MinUnitSpacing {
				validLocation = false
				break
			}
		}
		if validLocation {
			return at, true
		}
	}

	for idx := 0; idx < b.N*b.N; idx++ {
		at := core.FromIndex(idx, b.N)
		if b.Tiles[at.Row][at.Col].IsEmpty() {
			return at, true
		}
	}
	return core.Coordinate{}, false
}

func (g *Generator) placeResources(b *core.Board, kind core.ResourceKind, ratio int, units []UnitPlacement) {
	if ratio <= 0 {
		return
	}
	want := (b.N * b.N) / ratio
	placed := 0

	// Use a maximum attempt counter to avoid infinite loops
	maxAttempts := want * 10
	for attempts := 0; placed < want && attempts < maxAttempts; attempts++ {
		at := core.Coordinate{Row: g.rng.Intn(b.N), Col: g.rng.Intn(b.N)}
		if !b.Tiles[at.Row][at.Col].IsEmpty() {
			continue
		}

		res := core.Resource{Kind: kind}
		if kind == core.ResourceDiamondMine && len(units) > 0 && g.rng.Intn(100) < g.config.OwnedMinePercent {
			owner := units[g.rng.Intn(len(units))]
			res.Owned = true
			res.Owner = core.Owner{UnitID: owner.ID, Team: owner.Team}
		}
		if err := b.PlaceResource(at, res); err == nil {
			placed++
		}
	}
}
