package policy

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/search"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

// Decision is the outcome of one Decide call
type Decision struct {
	SessionID string
	Strategy  string
	HeroID    string
	Origin    core.Coordinate
	Move      Move
	Searches  int
	Duration  time.Duration
}

// Agent runs one named strategy against snapshots. It is safe for
// concurrent use.
type Agent struct {
	name            string
	sessionID       string
	thresholds      Thresholds
	iterationFactor int
	strategy        Strategy
	searcher        *search.Searcher
	bus             events.Publisher
	logger          zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
	// lastMoves remembers the previous move per hero id
	lastMoves map[string]Move
}

// AgentOption configures an Agent
type AgentOption func(*Agent)

// WithThresholds overrides the default thresholds
func WithThresholds(t Thresholds) AgentOption {
	return func(a *Agent) {
		a.thresholds = t
	}
}

// WithEventBus publishes decision events to bus
func WithEventBus(bus events.Publisher) AgentOption {
	return func(a *Agent) {
		a.bus = bus
	}
}

func WithLogger(logger zerolog.Logger) AgentOption {
	return func(a *Agent) {
		a.logger = logger
	}
}

// WithIterationFactor sets the search guard, see search.WithIterationFactor
func WithIterationFactor(factor int) AgentOption {
	return func(a *Agent) {
		a.iterationFactor = factor
	}
}

// WithSeed makes random strategies reproducible
func WithSeed(seed int64) AgentOption {
	return func(a *Agent) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSessionID replaces the generated session id
func WithSessionID(id string) AgentOption {
	return func(a *Agent) {
		a.sessionID = id
	}
}

// NewAgent creates an agent running the named strategy
func NewAgent(name string, opts ...AgentOption) (*Agent, error) {
	a := &Agent{
		name:            name,
		sessionID:       uuid.New().String(),
		thresholds:      DefaultThresholds(),
		iterationFactor: 1,
		logger:          log.With().Str("component", "agent").Logger(),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
		lastMoves:       make(map[string]Move),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.thresholds.Validate(); err != nil {
		return nil, err
	}
	strategy, err := Lookup(name, a.thresholds)
	if err != nil {
		return nil, err
	}
	a.strategy = strategy
	a.logger = a.logger.With().Str("strategy", name).Str("session_id", a.sessionID).Logger()

	a.searcher = search.New(
		search.WithLogger(a.logger.With().Str("component", "search").Logger()),
		search.WithIterationFactor(a.iterationFactor),
		search.WithFailureHook(a.predicateFailed),
	)
	return a, nil
}

// Name returns the strategy name
func (a *Agent) Name() string {
	return a.name
}

// SessionID identifies this agent's events
func (a *Agent) SessionID() string {
	return a.sessionID
}

// Decide builds the snapshot's board and picks a move for its active unit
func (a *Agent) Decide(snap *snapshot.Snapshot) (Decision, error) {
	if snap == nil {
		return Decision{}, fmt.Errorf("decide: %w", ErrNoBoard)
	}
	board, origin, err := snap.Build()
	if err != nil {
		return Decision{}, err
	}
	return a.DecideOn(board, origin)
}

// DecideOn picks a move for the unit standing at origin
func (a *Agent) DecideOn(board *core.Board, origin core.Coordinate) (Decision, error) {
	start := time.Now()

	if board == nil {
		return Decision{}, fmt.Errorf("decide: %w", ErrNoBoard)
	}
	if err := board.Validate(); err != nil {
		return Decision{}, err
	}
	state, err := NewState(board, origin, a.decisionRNG())
	if err != nil {
		return Decision{}, err
	}

	state.LastMove = a.lastMove(state.Hero.ID)

	helpers := NewHelpers(a.searcher, state, a.searchCompleted)
	move := a.strategy(state, helpers)
	a.remember(state.Hero.ID, move)

	d := Decision{
		SessionID: a.sessionID,
		Strategy:  a.name,
		HeroID:    state.Hero.ID,
		Origin:    origin,
		Move:      move,
		Searches:  helpers.Searches(),
		Duration:  time.Since(start),
	}

	a.logger.Debug().
		Str("hero_id", d.HeroID).
		Str("origin", origin.String()).
		Str("move", move.String()).
		Int("searches", d.Searches).
		Dur("duration", d.Duration).
		Msg("Decision made")

	if a.bus != nil {
		a.bus.Publish(events.NewDecisionMadeEvent(a.sessionID, d.HeroID, a.name, move.String(), origin, d.Searches, d.Duration))
	}
	return d, nil
}

// decisionRNG hands each decision its own generator so strategies never
// share one across goroutines
func (a *Agent) decisionRNG() *rand.Rand {
	a.mu.Lock()
	seed := a.rng.Int63()
	a.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}

func (a *Agent) lastMove(heroID string) Move {
	a.mu.Lock()
	defer a.mu.Unlock()
	if m, ok := a.lastMoves[heroID]; ok {
		return m
	}
	return Stay
}

func (a *Agent) remember(heroID string, m Move) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastMoves[heroID] = m
}

func (a *Agent) searchCompleted(target string, origin core.Coordinate, res search.Result) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(events.NewSearchCompletedEvent(a.sessionID, target, origin,
		res.Found, res.Cell.Coord(), res.Direction.String(), res.Distance, res.Explored))
}

func (a *Agent) predicateFailed(cell core.Cell, err error) {
	if a.bus == nil {
		return
	}
	a.bus.Publish(events.NewPredicateFailedEvent(a.sessionID, cell.Coord(), err))
}
