package testutil

import (
	"fmt"
	"testing"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

// Glyphs understood by BoardFromRows
const (
	GlyphEmpty   = '.'
	GlyphHero    = '@' // the active unit: id "hero", team 0, health HeroHealth
	GlyphFriend  = 'F' // team 0, health 50
	GlyphEnemy   = 'E' // team 1, health 50
	GlyphWeak    = 'w' // team 1, health 10
	GlyphBlocker = 'X' // team 9, health 100
	GlyphWell    = 'W'
	GlyphMine    = 'D' // unowned diamond mine
	GlyphOurMine = 'M' // diamond mine owned by "hero"
	GlyphTheirs  = 'T' // diamond mine owned by a team 1 unit
)

// HeroID and HeroHealth describe the unit placed for GlyphHero
const (
	HeroID     = "hero"
	HeroHealth = 100
)

// BoardFromRows builds a square board from one string per row. It returns
// the board and the position of GlyphHero (the zero coordinate when absent).
func BoardFromRows(t testing.TB, rows ...string) (*core.Board, core.Coordinate) {
	t.Helper()
	return BoardFromRowsWithHealth(t, HeroHealth, rows...)
}

// BoardFromRowsWithHealth is BoardFromRows with a custom health for the hero
func BoardFromRowsWithHealth(t testing.TB, heroHealth int, rows ...string) (*core.Board, core.Coordinate) {
	t.Helper()

	n := len(rows)
	board := core.NewBoard(n)
	var hero core.Coordinate

	for r, row := range rows {
		glyphs := []rune(row)
		if len(glyphs) != n {
			t.Fatalf("row %d has %d cells, want %d", r, len(glyphs), n)
		}
		for c, g := range glyphs {
			at := core.Coordinate{Row: r, Col: c}
			id := fmt.Sprintf("%c-%d-%d", g, r, c)
			var err error
			switch g {
			case GlyphEmpty:
			case GlyphHero:
				hero = at
				err = board.PlaceUnit(at, core.Unit{ID: HeroID, Team: 0, Health: heroHealth})
			case GlyphFriend:
				err = board.PlaceUnit(at, core.Unit{ID: id, Team: 0, Health: 50})
			case GlyphEnemy:
				err = board.PlaceUnit(at, core.Unit{ID: id, Team: 1, Health: 50})
			case GlyphWeak:
				err = board.PlaceUnit(at, core.Unit{ID: id, Team: 1, Health: 10})
			case GlyphBlocker:
				err = board.PlaceUnit(at, core.Unit{ID: id, Team: 9, Health: 100})
			case GlyphWell:
				err = board.PlaceResource(at, core.Resource{Kind: core.ResourceHealthWell})
			case GlyphMine:
				err = board.PlaceResource(at, core.Resource{Kind: core.ResourceDiamondMine})
			case GlyphOurMine:
				err = board.PlaceResource(at, core.Resource{
					Kind:  core.ResourceDiamondMine,
					Owned: true,
					Owner: core.Owner{UnitID: HeroID, Team: 0},
				})
			case GlyphTheirs:
				err = board.PlaceResource(at, core.Resource{
					Kind:  core.ResourceDiamondMine,
					Owned: true,
					Owner: core.Owner{UnitID: "rival", Team: 1},
				})
			default:
				t.Fatalf("unknown glyph %q at (%d,%d)", g, r, c)
			}
			if err != nil {
				t.Fatalf("placing %q at (%d,%d): %v", g, r, c, err)
			}
		}
	}

	return board, hero
}
