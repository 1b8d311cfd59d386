package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Simulation SimulationConfig `toml:"simulation"`
	Data       DataConfig       `toml:"data"`
	Scripting  ScriptingConfig  `toml:"scripting"`
	Network    NetworkConfig    `toml:"network"`
	Logging    LoggingConfig    `toml:"logging"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type SimulationConfig struct {
	TickRate      time.Duration `toml:"tick_rate"`
	Mode          string        `toml:"mode"`           // "basic" or "extended"
	Seed          int64         `toml:"seed"`           // 0 = derive from clock
	SnapshotEvery int           `toml:"snapshot_every"` // ticks between observer snapshots
	AutoStart     bool          `toml:"auto_start"`     // start a session without waiting for a client
}

type DataConfig struct {
	Dir string `toml:"dir"` // empty = embedded tables
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty = embedded scripts
}

type NetworkConfig struct {
	BindAddress   string        `toml:"bind_address"`
	Path          string        `toml:"path"`
	InQueueSize   int           `toml:"in_queue_size"`
	OutQueueSize  int           `toml:"out_queue_size"`
	MaxObservers  int           `toml:"max_observers"`
	MaxMsgPerSec  int           `toml:"max_messages_per_sec"` // 0 = unlimited
	MaxMsgPerTick int           `toml:"max_messages_per_tick"`
	WriteTimeout  time.Duration `toml:"write_timeout"`
	ReadTimeout   time.Duration `toml:"read_timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := defaults()
	cfg.Server.StartTime = time.Now().Unix()
	return cfg
}

func (c *Config) validate() error {
	switch c.Simulation.Mode {
	case "basic", "extended":
	default:
		return fmt.Errorf("simulation.mode %q: want basic or extended", c.Simulation.Mode)
	}
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive")
	}
	if c.Simulation.SnapshotEvery < 1 {
		c.Simulation.SnapshotEvery = 1
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "turfwar",
		},
		Simulation: SimulationConfig{
			TickRate:      time.Second / 60,
			Mode:          "basic",
			SnapshotEvery: 3,
			AutoStart:     false,
		},
		Network: NetworkConfig{
			BindAddress:   "0.0.0.0:7080",
			Path:          "/play",
			InQueueSize:   64,
			OutQueueSize:  32,
			MaxObservers:  16,
			MaxMsgPerSec:  240,
			MaxMsgPerTick: 8,
			WriteTimeout:  5 * time.Second,
			ReadTimeout:   60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
