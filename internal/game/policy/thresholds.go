package policy

import (
	"fmt"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/core"
)

// Thresholds are the health levels at which strategies change their mind.
// Retreat values send the hero to a health well; the comparison (< or <=)
// is fixed per strategy.
type Thresholds struct {
	AggressorRetreat       int `mapstructure:"aggressor_retreat"`        // health <= this
	HealthNutRetreat       int `mapstructure:"health_nut_retreat"`       // health <= this
	PriestRetreat          int `mapstructure:"priest_retreat"`           // health < this
	UnwiseAssassinRetreat  int `mapstructure:"unwise_assassin_retreat"`  // health < this
	CarefulAssassinRetreat int `mapstructure:"careful_assassin_retreat"` // health < this
	MinerRetreat           int `mapstructure:"miner_retreat"`            // health < this
	TacticianRetreat       int `mapstructure:"tactician_retreat"`        // health < this
	// RaypolyAttack is the health needed to hit an adjacent enemy (>=).
	RaypolyAttack int `mapstructure:"raypoly_attack"`
	// FinishOff marks an adjacent enemy as worth attacking at once.
	FinishOff int `mapstructure:"finish_off"`
	// LookaheadFinishOff is the same, for enemies two steps away.
	LookaheadFinishOff int `mapstructure:"lookahead_finish_off"`
}

// DefaultThresholds returns the stock tuning
func DefaultThresholds() Thresholds {
	return Thresholds{
		AggressorRetreat:       30,
		HealthNutRetreat:       75,
		PriestRetreat:          60,
		UnwiseAssassinRetreat:  30,
		CarefulAssassinRetreat: 50,
		MinerRetreat:           40,
		TacticianRetreat:       80,
		RaypolyAttack:          40,
		FinishOff:              30,
		LookaheadFinishOff:     20,
	}
}

// Validate checks every threshold is a health value
func (t Thresholds) Validate() error {
	values := map[string]int{
		"aggressor_retreat":        t.AggressorRetreat,
		"health_nut_retreat":       t.HealthNutRetreat,
		"priest_retreat":           t.PriestRetreat,
		"unwise_assassin_retreat":  t.UnwiseAssassinRetreat,
		"careful_assassin_retreat": t.CarefulAssassinRetreat,
		"miner_retreat":            t.MinerRetreat,
		"tactician_retreat":        t.TacticianRetreat,
		"raypoly_attack":           t.RaypolyAttack,
		"finish_off":               t.FinishOff,
		"lookahead_finish_off":     t.LookaheadFinishOff,
	}
	for name, v := range values {
		if v < core.MinHealth || v > core.MaxHealth {
			return fmt.Errorf("threshold %s = %d: %w", name, v, core.ErrInvalidHealth)
		}
	}
	return nil
}
