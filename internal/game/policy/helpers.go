package policy

import (
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
)

// Search target names reported to the SearchObserver
const (
	TargetHealthWell         = "health_well"
	TargetEnemy              = "enemy"
	TargetWeakerEnemy        = "weaker_enemy"
	TargetTeamMember         = "team_member"
	TargetNonTeamDiamondMine = "non_team_diamond_mine"
	TargetUnownedDiamondMine = "unowned_diamond_mine"
)

// SearchObserver is told about every search a strategy runs
type SearchObserver func(target string, origin core.Coordinate, res search.Result)

// Helpers runs the common nearest-object searches for one decision
type Helpers struct {
	finder   Finder
	state    State
	observe  SearchObserver
	searches int
}

// NewHelpers binds a finder to a decision state. observe may be nil.
func NewHelpers(finder Finder, state State, observe SearchObserver) *Helpers {
	return &Helpers{finder: finder, state: state, observe: observe}
}

// Searches returns how many searches have run so far
func (h *Helpers) Searches() int {
	return h.searches
}

// Nearest runs one search from the hero's position. target labels the
// search for observers.
func (h *Helpers) Nearest(target string, pred search.Predicate) search.Result {
	res := h.finder.FindNearest(h.state.Board, h.state.Origin, pred)
	h.searches++
	if h.observe != nil {
		h.observe(target, h.state.Origin, res)
	}
	return res
}

func (h *Helpers) NearestHealthWell() search.Result {
	return h.Nearest(TargetHealthWell, IsHealthWell)
}

func (h *Helpers) NearestEnemy() search.Result {
	return h.Nearest(TargetEnemy, Enemy(h.state.Hero.Team))
}

// NearestWeakerEnemy finds the closest enemy with less health than the hero
func (h *Helpers) NearestWeakerEnemy() search.Result {
	return h.Nearest(TargetWeakerEnemy, WeakerEnemy(h.state.Hero.Team, h.state.Hero.Health))
}

func (h *Helpers) NearestTeamMember() search.Result {
	return h.Nearest(TargetTeamMember, TeamMember(h.state.Hero.Team))
}

// NearestNonTeamDiamondMine finds the closest mine not held by the hero's team
func (h *Helpers) NearestNonTeamDiamondMine() search.Result {
	return h.Nearest(TargetNonTeamDiamondMine, NonTeamDiamondMine(h.state.Hero.Team))
}

// NearestUnownedDiamondMine finds the closest mine not held by the hero,
// including mines held by teammates
func (h *Helpers) NearestUnownedDiamondMine() search.Result {
	return h.Nearest(TargetUnownedDiamondMine, UnownedDiamondMine(h.state.Hero.ID))
}

// WhatsAround resolves the hero's four neighbors
func (h *Helpers) WhatsAround() core.Surroundings {
	return h.state.Board.Surroundings(h.state.Origin)
}

// Toward turns a search result into a move. NotFound becomes Stay.
func Toward(res search.Result) Move {
	if !res.Found {
		return Stay
	}
	return MoveFor(res.Direction)
}
