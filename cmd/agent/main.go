package main

import (
	"flag"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/config"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	snapshotPath := flag.String("snapshot", "", "Path to a board snapshot (YAML or JSON)")
	strategy := flag.String("strategy", "", "Strategy name (empty to use config default)")
	color := flag.Bool("color", true, "Render the board with ANSI colors")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()
	config.SetupLogging(cfg.Logging.Level, cfg.Logging.Format)
	snapshot.SetMaxSize(cfg.Snapshot.MaxSize)

	if *strategy == "" {
		*strategy = cfg.Agent.Strategy
	}
	if *snapshotPath == "" {
		log.Fatal().Strs("strategies", policy.Names()).Msg("No snapshot given, pass -snapshot")
	}

	snap, err := snapshot.Load(*snapshotPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *snapshotPath).Msg("Failed to load snapshot")
	}
	board, active, err := snap.Build()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build board")
	}
	fmt.Print(board.Render(active, *color))

	opts := cfg.AgentOptions()
	if cfg.Logging.Events {
		bus := events.NewEventBus()
		bus.Subscribe(subscribers.NewLoggerSubscriber("cli", log.Logger, zerolog.InfoLevel))
		opts = append(opts, policy.WithEventBus(bus))
	}

	agent, err := policy.NewAgent(*strategy, opts...)
	if err != nil {
		log.Fatal().Err(err).Str("strategy", *strategy).Msg("Failed to create agent")
	}

	decision, err := agent.DecideOn(board, active)
	if err != nil {
		log.Fatal().Err(err).Msg("Decision failed")
	}

	log.Debug().
		Str("hero", decision.HeroID).
		Int("searches", decision.Searches).
		Dur("duration", decision.Duration).
		Msg("Decision made")
	fmt.Printf("%s moves %s\n", decision.HeroID, decision.Move)
}
