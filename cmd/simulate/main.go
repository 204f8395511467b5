package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/common"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/config"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/mapgen"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	boards := flag.Int("boards", -1, "Number of boards to generate (-1 to use config default)")
	seed := flag.Int64("seed", 0, "Map seed (0 to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	config.SetupLogging(cfg.Logging.Level, cfg.Logging.Format)
	snapshot.SetMaxSize(cfg.Snapshot.MaxSize)

	if *boards == -1 {
		*boards = cfg.Simulation.Boards
	}
	if *seed == 0 {
		*seed = cfg.Simulation.Seed
	}

	mapCfg := mapgen.DefaultMapConfig(cfg.Simulation.BoardSize, cfg.Simulation.Teams, cfg.Simulation.UnitsPerTeam)
	mapCfg.DiamondMineRatio = cfg.Simulation.DiamondMineRatio
	mapCfg.HealthWellRatio = cfg.Simulation.HealthWellRatio
	gen := mapgen.NewGenerator(mapCfg, rand.New(rand.NewSource(*seed)))

	names := policy.Names()
	agents := make([]*policy.Agent, len(names))
	tallies := make([]*common.Tally[policy.Move], len(names))
	for i, name := range names {
		agent, err := policy.NewAgent(name, append(cfg.AgentOptions(), policy.WithSeed(*seed))...)
		if err != nil {
			log.Fatal().Err(err).Str("strategy", name).Msg("Failed to create agent")
		}
		agents[i] = agent
		tallies[i] = &common.Tally[policy.Move]{}
	}

	log.Info().
		Int("boards", *boards).
		Int64("seed", *seed).
		Int("size", mapCfg.Size).
		Int("strategies", len(names)).
		Msg("Starting simulation")

	start := time.Now()
	failed := 0
	for n := 0; n < *boards; n++ {
		snap, err := gen.GenerateMap()
		if err != nil {
			log.Fatal().Err(err).Int("board", n).Msg("Failed to generate board")
		}
		for i, agent := range agents {
			decision, err := agent.Decide(snap)
			if err != nil {
				failed++
				log.Warn().Err(err).Int("board", n).Str("strategy", names[i]).Msg("Decision failed")
				continue
			}
			tallies[i].Add(decision.Move)
		}
	}

	for i, name := range names {
		log.Info().
			Str("strategy", name).
			Int("decisions", tallies[i].Total()).
			Str("moves", histogram(tallies[i])).
			Msg("Move histogram")
	}
	log.Info().
		Int("failed", failed).
		Dur("elapsed", time.Since(start)).
		Msg("Simulation complete")
}

// histogram renders a tally as "North=40.0% Stay=35.0% ..." by descending count
func histogram(t *common.Tally[policy.Move]) string {
	order := make(map[policy.Move]int, len(policy.Moves))
	for i, m := range policy.Moves {
		order[m] = i
	}
	ranked := t.Ranked(func(a, b policy.Move) bool { return order[a] < order[b] })

	parts := make([]string, 0, len(ranked))
	for _, m := range ranked {
		parts = append(parts, fmt.Sprintf("%s=%.1f%%", m, common.Percent(t.Count(m), t.Total())))
	}
	return strings.Join(parts, " ")
}
