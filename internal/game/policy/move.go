package policy

import "github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"

// Move is the command returned for the active unit
type Move string

const (
	Stay  Move = "Stay"
	North Move = "North"
	East  Move = "East"
	South Move = "South"
	West  Move = "West"
)

// Moves lists every move, Stay first
var Moves = []Move{Stay, North, East, South, West}

// MoveFor converts a direction to the matching move
func MoveFor(d core.Direction) Move {
	switch d {
	case core.North:
		return North
	case core.East:
		return East
	case core.South:
		return South
	case core.West:
		return West
	default:
		return Stay
	}
}

// ParseMove maps a move name to a Move. Anything unrecognised is Stay.
func ParseMove(s string) Move {
	switch m := Move(s); m {
	case North, East, South, West:
		return m
	default:
		return Stay
	}
}

// Direction returns the direction of a cardinal move. The boolean is false
// for Stay.
func (m Move) Direction() (core.Direction, bool) {
	d, err := core.ParseDirection(string(m))
	if err != nil {
		return core.North, false
	}
	return d, true
}

func (m Move) String() string {
	return string(m)
}
