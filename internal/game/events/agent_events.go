package events

import (
	"time"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

// Event type constants
const (
	TypeDecisionMade    = "decision.made"
	TypeSearchCompleted = "search.completed"
	TypePredicateFailed = "predicate.failed"
)

// AgentEventTypes lists every type an agent publishes
var AgentEventTypes = []string{TypeDecisionMade, TypeSearchCompleted, TypePredicateFailed}

// DecisionMadeEvent is published once per decision
type DecisionMadeEvent struct {
	BaseEvent
	HeroID   string          `json:"hero_id"`
	Strategy string          `json:"strategy"`
	Move     string          `json:"move"`
	Origin   core.Coordinate `json:"origin"`
	Searches int             `json:"searches"`
	Duration time.Duration   `json:"duration"`
}

// NewDecisionMadeEvent creates a new DecisionMadeEvent
func NewDecisionMadeEvent(sessionID, heroID, strategy, move string, origin core.Coordinate, searches int, duration time.Duration) *DecisionMadeEvent {
	return &DecisionMadeEvent{
		BaseEvent: newBase(TypeDecisionMade, sessionID),
		HeroID:    heroID,
		Strategy:  strategy,
		Move:      move,
		Origin:    origin,
		Searches:  searches,
		Duration:  duration,
	}
}

// SearchCompletedEvent is published after every nearest-match search a
// strategy runs
type SearchCompletedEvent struct {
	BaseEvent
	Target    string          `json:"target"`
	Origin    core.Coordinate `json:"origin"`
	Found     bool            `json:"found"`
	Goal      core.Coordinate `json:"goal"`
	Direction string          `json:"direction,omitempty"`
	Distance  int             `json:"distance,omitempty"`
	Explored  int             `json:"explored"`
}

// NewSearchCompletedEvent creates a new SearchCompletedEvent. goal,
// direction and distance are ignored when found is false.
func NewSearchCompletedEvent(sessionID, target string, origin core.Coordinate, found bool, goal core.Coordinate, direction string, distance, explored int) *SearchCompletedEvent {
	e := &SearchCompletedEvent{
		BaseEvent: newBase(TypeSearchCompleted, sessionID),
		Target:    target,
		Origin:    origin,
		Found:     found,
		Explored:  explored,
	}
	if found {
		e.Goal = goal
		e.Direction = direction
		e.Distance = distance
	}
	return e
}

// PredicateFailedEvent is published when a goal test errors or panics
type PredicateFailedEvent struct {
	BaseEvent
	Cell  core.Coordinate `json:"cell"`
	Error string          `json:"error"`
}

// NewPredicateFailedEvent creates a new PredicateFailedEvent
func NewPredicateFailedEvent(sessionID string, cell core.Coordinate, err error) *PredicateFailedEvent {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &PredicateFailedEvent{
		BaseEvent: newBase(TypePredicateFailed, sessionID),
		Cell:      cell,
		Error:     msg,
	}
}
