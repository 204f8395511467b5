package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HeroBattleAgent/internal/game/policy"
)

func reset() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
agent:
  strategy: careful_assassin
  thresholds:
    careful_assassin_retreat: 65
search:
  max_iteration_factor: 2
server:
  grpc:
    port: 8080
simulation:
  board_size: 9
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	reset()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, "careful_assassin", c.Agent.Strategy)
	assert.Equal(t, 65, c.Agent.Thresholds.CarefulAssassinRetreat)
	assert.Equal(t, 30, c.Agent.Thresholds.AggressorRetreat, "unset thresholds keep defaults")
	assert.Equal(t, 2, c.Search.MaxIterationFactor)
	assert.Equal(t, 8080, c.Server.GRPC.Port)
	assert.Equal(t, 9, c.Simulation.BoardSize)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	reset()

	// A missing explicit file falls back to defaults
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, "tactician", c.Agent.Strategy)
	assert.Equal(t, 80, c.Agent.Thresholds.TacticianRetreat)
	assert.Equal(t, 40, c.Agent.Thresholds.RaypolyAttack)
	assert.Equal(t, 1, c.Search.MaxIterationFactor)
	assert.Equal(t, 256, c.Snapshot.MaxSize)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.Equal(t, 50061, c.Server.GRPC.Port)
	assert.True(t, c.Server.GRPC.EnableReflection)
	assert.Equal(t, 12, c.Simulation.BoardSize)
	assert.Equal(t, int64(1), c.Simulation.Seed)
}

func TestEnvironmentVariables(t *testing.T) {
	reset()

	t.Setenv("HBA_AGENT_STRATEGY", "coward")
	t.Setenv("HBA_SERVER_GRPC_PORT", "9090")
	t.Setenv("HBA_AGENT_THRESHOLDS_MINER_RETREAT", "55")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, "coward", c.Agent.Strategy)
	assert.Equal(t, 9090, c.Server.GRPC.Port)
	assert.Equal(t, 55, c.Agent.Thresholds.MinerRetreat)
}

func TestInitRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown strategy", "agent:\n  strategy: ambusher\n"},
		{"threshold out of range", "agent:\n  thresholds:\n    finish_off: 120\n"},
		{"iteration factor", "search:\n  max_iteration_factor: 0\n"},
		{"snapshot max size", "snapshot:\n  max_size: 0\n"},
		{"simulation larger than snapshots", "snapshot:\n  max_size: 8\nsimulation:\n  board_size: 9\n"},
		{"log format", "logging:\n  format: xml\n"},
		{"port", "server:\n  grpc:\n    port: 70000\n"},
		{"metrics interval", "server:\n  grpc:\n    metrics_interval: -1\n"},
		{"crowded simulation", "simulation:\n  board_size: 2\n  teams: 3\n  units_per_team: 2\n"},
		{"no teams", "simulation:\n  teams: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			reset()
			assert.Error(t, Init(path))
		})
	}
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	require.NoError(t, Set("agent.strategy", "priest"))
	require.NoError(t, Set("simulation.boards", 7))

	c := Get()
	assert.Equal(t, "priest", c.Agent.Strategy)
	assert.Equal(t, 7, c.Simulation.Boards)
	assert.Equal(t, 7, GetViper().GetInt("simulation.boards"))
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
agent:
  strategy: aggressor
server:
  grpc:
    port: 50061
`
	require.NoError(t, os.WriteFile(baseConfig, []byte(baseContent), 0644))

	envContent := `
agent:
  strategy: coward
logging:
  level: error
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.prod.yaml"), []byte(envContent), 0644))

	reset()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, "coward", c.Agent.Strategy) // Overridden
	assert.Equal(t, "error", c.Logging.Level)   // New value
	assert.Equal(t, 50061, c.Server.GRPC.Port)  // Kept

	assert.NoError(t, LoadEnvironmentConfig("staging"), "missing overlay is ignored")
	assert.NoError(t, LoadEnvironmentConfig(""))
}

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agent:\n  strategy: aggressor\n"), 0644))

	reset()
	require.NoError(t, Init(path))

	var mu sync.Mutex
	var strategies []string
	var failures int
	WatchConfig(func(c *Config, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			failures++
			return
		}
		strategies = append(strategies, c.Agent.Strategy)
	})

	require.NoError(t, os.WriteFile(path, []byte("agent:\n  strategy: coward\n"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(strategies) > 0 && strategies[len(strategies)-1] == "coward"
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("agent:\n  strategy: ambusher\n"), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return failures > 0
	}, 5*time.Second, 20*time.Millisecond)
}

func TestSetupLogging(t *testing.T) {
	defer func(prev zerolog.Logger, lvl zerolog.Level) {
		log.Logger = prev
		zerolog.SetGlobalLevel(lvl)
	}(log.Logger, zerolog.GlobalLevel())

	var buf bytes.Buffer
	setupLogging(&buf, "warn", "json")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	setupLogging(&buf, "bogus", "console")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Info().Msg("pretty")
	assert.Contains(t, buf.String(), "pretty")
	assert.NotContains(t, buf.String(), `"message"`)
}

func TestAgentOptions(t *testing.T) {
	c := &Config{
		Agent:  AgentConfig{Strategy: "tactician", Thresholds: policy.DefaultThresholds()},
		Search: SearchConfig{MaxIterationFactor: 1},
	}
	assert.Len(t, c.AgentOptions(), 2)

	c.Agent.Seed = 7
	opts := c.AgentOptions()
	assert.Len(t, opts, 3)

	a, err := policy.NewAgent(c.Agent.Strategy, opts...)
	require.NoError(t, err)
	assert.Equal(t, "tactician", a.Name())
}
