package monitoring

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events"
)

// DecisionMonitor subscribes to agent events and periodically logs decision
// throughput per strategy alongside the goroutine count.
type DecisionMonitor struct {
	mu             sync.RWMutex
	decisions      map[string]int
	moves          map[string]int
	searches       int
	explored       int
	failures       int
	totalDuration  time.Duration
	peakGoroutines int

	checkInterval time.Duration
	logger        zerolog.Logger
	stopChan      chan struct{}
	stopOnce      sync.Once
}

var _ events.Subscriber = (*DecisionMonitor)(nil)

// NewDecisionMonitor creates a monitor that reports every interval.
// A non-positive interval defaults to 30s.
func NewDecisionMonitor(interval time.Duration) *DecisionMonitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DecisionMonitor{
		decisions:     make(map[string]int),
		moves:         make(map[string]int),
		checkInterval: interval,
		logger:        log.With().Str("component", "decision_monitor").Logger(),
		stopChan:      make(chan struct{}),
	}
}

// ID implements events.Subscriber
func (dm *DecisionMonitor) ID() string {
	return "decision_monitor"
}

// InterestedIn implements events.Subscriber
func (dm *DecisionMonitor) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeDecisionMade, events.TypeSearchCompleted, events.TypePredicateFailed:
		return true
	}
	return false
}

// HandleEvent folds one event into the counters
func (dm *DecisionMonitor) HandleEvent(event events.Event) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	switch e := event.(type) {
	case *events.DecisionMadeEvent:
		dm.decisions[e.Strategy]++
		dm.moves[e.Move]++
		dm.totalDuration += e.Duration
	case *events.SearchCompletedEvent:
		dm.searches++
		dm.explored += e.Explored
	case *events.PredicateFailedEvent:
		dm.failures++
	}
}

// Start begins periodic reporting
func (dm *DecisionMonitor) Start() {
	go dm.monitor()
	dm.logger.Info().
		Dur("interval", dm.checkInterval).
		Msg("Started decision monitoring")
}

// Stop ends periodic reporting. It is safe to call more than once.
func (dm *DecisionMonitor) Stop() {
	dm.stopOnce.Do(func() { close(dm.stopChan) })
}

func (dm *DecisionMonitor) monitor() {
	ticker := time.NewTicker(dm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			dm.report()
		case <-dm.stopChan:
			dm.report()
			return
		}
	}
}

func (dm *DecisionMonitor) report() {
	m := dm.GetMetrics()
	if m.Decisions == 0 && m.Searches == 0 {
		return
	}
	dm.logger.Info().
		Int("decisions", m.Decisions).
		Interface("by_strategy", m.ByStrategy).
		Interface("by_move", m.ByMove).
		Int("searches", m.Searches).
		Float64("mean_explored", m.MeanExplored).
		Int("predicate_failures", m.PredicateFailures).
		Dur("mean_duration", m.MeanDuration).
		Int("goroutines", m.Goroutines).
		Int("peak_goroutines", m.PeakGoroutines).
		Msg("Decision metrics")
}

// GetMetrics returns a snapshot of the counters
func (dm *DecisionMonitor) GetMetrics() DecisionMetrics {
	goroutines := runtime.NumGoroutine()

	dm.mu.Lock()
	defer dm.mu.Unlock()
	if goroutines > dm.peakGoroutines {
		dm.peakGoroutines = goroutines
	}

	m := DecisionMetrics{
		ByStrategy:        copyMap(dm.decisions),
		ByMove:            copyMap(dm.moves),
		Searches:          dm.searches,
		PredicateFailures: dm.failures,
		Goroutines:        goroutines,
		PeakGoroutines:    dm.peakGoroutines,
	}
	for _, n := range dm.decisions {
		m.Decisions += n
	}
	if m.Decisions > 0 {
		m.MeanDuration = dm.totalDuration / time.Duration(m.Decisions)
	}
	if dm.searches > 0 {
		m.MeanExplored = float64(dm.explored) / float64(dm.searches)
	}
	return m
}

// DecisionMetrics contains decision statistics
type DecisionMetrics struct {
	Decisions         int            `json:"decisions"`
	ByStrategy        map[string]int `json:"by_strategy"`
	ByMove            map[string]int `json:"by_move"`
	Searches          int            `json:"searches"`
	MeanExplored      float64        `json:"mean_explored"`
	PredicateFailures int            `json:"predicate_failures"`
	MeanDuration      time.Duration  `json:"mean_duration"`
	Goroutines        int            `json:"goroutines"`
	PeakGoroutines    int            `json:"peak_goroutines"`
}

func copyMap(m map[string]int) map[string]int {
	result := make(map[string]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
