package policy

import (
	"fmt"
	"sort"
)

// Factory builds a strategy from the configured thresholds
type Factory func(Thresholds) Strategy

var registry = map[string]Factory{
	"aggressor":             Aggressor,
	"health_nut":            HealthNut,
	"balanced":              Balanced,
	"northerner":            Northerner,
	"blind_man":             BlindMan,
	"priest":                Priest,
	"unwise_assassin":       UnwiseAssassin,
	"careful_assassin":      CarefulAssassin,
	"safe_diamond_miner":    SafeDiamondMiner,
	"selfish_diamond_miner": SelfishDiamondMiner,
	"coward":                Coward,
	"tactician":             Tactician,
	"raypoly":               Raypoly,
	"dslaugh":               Dslaugh,
}

// Lookup builds the named strategy
func Lookup(name string, t Thresholds) (Strategy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(t), nil
}

// Names lists the registered strategies in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a registered strategy
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}
