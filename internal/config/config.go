package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/snapshot"
)

// Config holds all configuration for the application
type Config struct {
	Agent      AgentConfig      `mapstructure:"agent"`
	Search     SearchConfig     `mapstructure:"search"`
	Snapshot   SnapshotConfig   `mapstructure:"snapshot"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Server     ServerConfig     `mapstructure:"server"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// AgentConfig selects the strategy and its tuning
type AgentConfig struct {
	Strategy   string            `mapstructure:"strategy"`
	Seed       int64             `mapstructure:"seed"` // 0 means seed from the clock
	Thresholds policy.Thresholds `mapstructure:"thresholds"`
}

// SearchConfig holds nearest-match search settings
type SearchConfig struct {
	MaxIterationFactor int `mapstructure:"max_iteration_factor"`
}

// SnapshotConfig bounds the boards accepted from snapshot documents
type SnapshotConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Events bool   `mapstructure:"events"` // log every decision event
}

// ServerConfig holds server configuration
type ServerConfig struct {
	GRPC GRPCServerConfig `mapstructure:"grpc"`
}

// GRPCServerConfig holds gRPC server configuration
type GRPCServerConfig struct {
	Host                  string `mapstructure:"host"`
	Port                  int    `mapstructure:"port"`
	EnableReflection      bool   `mapstructure:"enable_reflection"`
	GracefulShutdownDelay int    `mapstructure:"graceful_shutdown_delay"`
	MetricsInterval       int    `mapstructure:"metrics_interval"` // seconds, 0 disables
}

// SimulationConfig holds settings for random board runs
type SimulationConfig struct {
	BoardSize        int   `mapstructure:"board_size"`
	Teams            int   `mapstructure:"teams"`
	UnitsPerTeam     int   `mapstructure:"units_per_team"`
	DiamondMineRatio int   `mapstructure:"diamond_mine_ratio"`
	HealthWellRatio  int   `mapstructure:"health_well_ratio"`
	Boards           int   `mapstructure:"boards"`
	Seed             int64 `mapstructure:"seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Agent defaults
	th := policy.DefaultThresholds()
	v.SetDefault("agent.strategy", "tactician")
	v.SetDefault("agent.seed", 0)
	v.SetDefault("agent.thresholds.aggressor_retreat", th.AggressorRetreat)
	v.SetDefault("agent.thresholds.health_nut_retreat", th.HealthNutRetreat)
	v.SetDefault("agent.thresholds.priest_retreat", th.PriestRetreat)
	v.SetDefault("agent.thresholds.unwise_assassin_retreat", th.UnwiseAssassinRetreat)
	v.SetDefault("agent.thresholds.careful_assassin_retreat", th.CarefulAssassinRetreat)
	v.SetDefault("agent.thresholds.miner_retreat", th.MinerRetreat)
	v.SetDefault("agent.thresholds.tactician_retreat", th.TacticianRetreat)
	v.SetDefault("agent.thresholds.raypoly_attack", th.RaypolyAttack)
	v.SetDefault("agent.thresholds.finish_off", th.FinishOff)
	v.SetDefault("agent.thresholds.lookahead_finish_off", th.LookaheadFinishOff)

	// Search defaults
	v.SetDefault("search.max_iteration_factor", 1)

	// Snapshot defaults
	v.SetDefault("snapshot.max_size", snapshot.DefaultMaxSize)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", false)

	// gRPC server defaults
	v.SetDefault("server.grpc.host", "0.0.0.0")
	v.SetDefault("server.grpc.port", 50061)
	v.SetDefault("server.grpc.enable_reflection", true)
	v.SetDefault("server.grpc.graceful_shutdown_delay", 5)
	v.SetDefault("server.grpc.metrics_interval", 30)

	// Simulation defaults
	v.SetDefault("simulation.board_size", 12)
	v.SetDefault("simulation.teams", 2)
	v.SetDefault("simulation.units_per_team", 4)
	v.SetDefault("simulation.diamond_mine_ratio", 12)
	v.SetDefault("simulation.health_well_ratio", 25)
	v.SetDefault("simulation.boards", 100)
	v.SetDefault("simulation.seed", 1)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hero-battle-agent")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("HBA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// A specific file that is missing is fine, defaults apply. For the
		// default locations only ConfigFileNotFoundError is ignored.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml from the directory of the
// loaded config file (or the working directory) over the current values
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := v.ConfigFileUsed(); used != "" {
		if i := strings.LastIndexAny(used, `/\`); i >= 0 {
			envFile = used[:i+1] + envFile
		}
	}

	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	// Re-unmarshal with merged config
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	v.Set(key, value)
	// Re-unmarshal to update struct
	return v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. onChange receives
// the reloaded config, or the validation error when the new file is
// rejected; the previous values stay in place in that case.
func WatchConfig(onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			if onChange != nil {
				onChange(nil, err)
			}
			return
		}
		if err := Validate(next); err != nil {
			if onChange != nil {
				onChange(nil, err)
			}
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(next, nil)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Validate agent settings
	if !policy.Known(c.Agent.Strategy) {
		return fmt.Errorf("agent.strategy %q is not one of %s", c.Agent.Strategy, strings.Join(policy.Names(), ", "))
	}
	if err := c.Agent.Thresholds.Validate(); err != nil {
		return fmt.Errorf("agent.thresholds: %w", err)
	}
	if c.Search.MaxIterationFactor < 1 {
		return fmt.Errorf("search.max_iteration_factor must be at least 1")
	}
	if c.Snapshot.MaxSize < 1 {
		return fmt.Errorf("snapshot.max_size must be at least 1")
	}

	// Validate logging
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	// Validate server configuration
	if c.Server.GRPC.Port <= 0 || c.Server.GRPC.Port > 65535 {
		return fmt.Errorf("server.grpc.port must be between 1 and 65535")
	}
	if c.Server.GRPC.GracefulShutdownDelay < 0 {
		return fmt.Errorf("server.grpc.graceful_shutdown_delay must be non-negative")
	}
	if c.Server.GRPC.MetricsInterval < 0 {
		return fmt.Errorf("server.grpc.metrics_interval must be non-negative")
	}

	// Validate simulation settings
	s := c.Simulation
	if s.BoardSize <= 0 {
		return fmt.Errorf("simulation.board_size must be positive")
	}
	if s.BoardSize > c.Snapshot.MaxSize {
		return fmt.Errorf("simulation.board_size %d exceeds snapshot.max_size %d", s.BoardSize, c.Snapshot.MaxSize)
	}
	if s.Teams < 1 || s.UnitsPerTeam < 1 {
		return fmt.Errorf("simulation needs at least one team with one unit")
	}
	if s.Teams*s.UnitsPerTeam > s.BoardSize*s.BoardSize {
		return fmt.Errorf("simulation.board_size %d cannot hold %d units", s.BoardSize, s.Teams*s.UnitsPerTeam)
	}
	if s.DiamondMineRatio < 0 || s.HealthWellRatio < 0 {
		return fmt.Errorf("simulation resource ratios must be non-negative")
	}
	if s.Boards < 0 {
		return fmt.Errorf("simulation.boards must be non-negative")
	}

	return nil
}

// AgentOptions turns the agent and search sections into agent options.
// A zero seed leaves the agent seeded from the clock.
func (c *Config) AgentOptions() []policy.AgentOption {
	opts := []policy.AgentOption{
		policy.WithThresholds(c.Agent.Thresholds),
		policy.WithIterationFactor(c.Search.MaxIterationFactor),
	}
	if c.Agent.Seed != 0 {
		opts = append(opts, policy.WithSeed(c.Agent.Seed))
	}
	return opts
}
