package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/config"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/grpc/agentserver"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/monitoring"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	port := flag.Int("port", -1, "The server port (-1 to use config default)")
	host := flag.String("host", "", "The server host (empty to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	strategy := flag.String("strategy", "", "Default strategy (empty to use config default)")
	enableReflection := flag.Bool("enable-reflection", false, "Enable gRPC reflection for debugging")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay, merges config.<env>.yaml")
	watch := flag.Bool("watch", true, "Reload the config file when it changes")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *port == -1 {
		*port = cfg.Server.GRPC.Port
	}
	if *host == "" {
		*host = cfg.Server.GRPC.Host
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *strategy == "" {
		*strategy = cfg.Agent.Strategy
	}
	*enableReflection = resolveBool(*enableReflection, setFlags(flag.CommandLine)["enable-reflection"], cfg.Server.GRPC.EnableReflection)

	config.SetupLogging(*logLevel, cfg.Logging.Format)
	snapshot.SetMaxSize(cfg.Snapshot.MaxSize)

	var bus events.Publisher
	eb := events.NewEventBus()
	if cfg.Logging.Events {
		eb.Subscribe(subscribers.NewLoggerSubscriber("server", log.Logger, zerolog.InfoLevel))
	}
	var monitor *monitoring.DecisionMonitor
	if cfg.Server.GRPC.MetricsInterval > 0 {
		monitor = monitoring.NewDecisionMonitor(time.Duration(cfg.Server.GRPC.MetricsInterval) * time.Second)
		eb.Subscribe(monitor)
		monitor.Start()
		defer monitor.Stop()
	}
	if eb.HasSubscribers() {
		bus = eb
	}
	agentOptions := func(c *config.Config) []policy.AgentOption {
		opts := c.AgentOptions()
		if bus != nil {
			opts = append(opts, policy.WithEventBus(bus))
		}
		return opts
	}

	srv, err := agentserver.NewServer(*strategy, agentOptions(cfg)...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create agent server")
	}

	log.Info().
		Int("port", *port).
		Str("host", *host).
		Str("strategy", *strategy).
		Msg("Starting gRPC agent server")

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", *host, *port))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to listen")
	}

	grpcServer, healthServer := agentserver.NewGRPCServer(srv, *enableReflection)
	if *enableReflection {
		log.Info().Msg("gRPC reflection enabled")
	}

	shutdownDelay := time.Duration(cfg.Server.GRPC.GracefulShutdownDelay) * time.Second
	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(func(next *config.Config, err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config change rejected, keeping previous settings")
				return
			}
			if err := srv.Reconfigure(next.Agent.Strategy, agentOptions(next)...); err != nil {
				log.Warn().Err(err).Msg("Failed to apply reloaded config")
				return
			}
			snapshot.SetMaxSize(next.Snapshot.MaxSize)
			log.Info().Str("strategy", next.Agent.Strategy).Msg("Config reloaded")
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus(agentserver.ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

		// Give ongoing requests time to complete
		time.Sleep(shutdownDelay)

		log.Info().Msg("Gracefully stopping gRPC server")
		grpcServer.GracefulStop()
		cancel()
	}()

	log.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("Failed to serve")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Server shutdown complete")
}

// setFlags reports which flags were given on the command line
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// resolveBool lets an explicitly passed boolean flag, true or false, beat
// the config value
func resolveBool(flagValue, explicit, configValue bool) bool {
	if explicit {
		return flagValue
	}
	return configValue
}
