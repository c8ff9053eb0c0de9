package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/scenekit/internal/physics"
)

const (
	DefaultDt         = 1.0 / 60.0
	DefaultTicks      = 600
	DefaultIterations = 10
	DefaultDataDir    = ".scenekit"
)

// Config is the runtime configuration read from a TOML file.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Physics PhysicsConfig `toml:"physics"`
	Run     RunConfig     `toml:"run"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type PhysicsConfig struct {
	Backend    string     `toml:"backend"` // "chipmunk" or "memory"
	Dt         float64    `toml:"dt"`
	Gravity    [2]float64 `toml:"gravity"`
	Iterations int        `toml:"iterations"`
	Integrator string     `toml:"integrator"` // memory backend only
}

type RunConfig struct {
	Ticks            uint64 `toml:"ticks"`
	DataDir          string `toml:"data_dir"`
	Record           bool   `toml:"record"`
	RecordEvery      uint64 `toml:"record_every"`
	RecoverListeners bool   `toml:"recover_listeners"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Physics: PhysicsConfig{
			Backend:    "chipmunk",
			Dt:         DefaultDt,
			Gravity:    [2]float64{0, -9.81},
			Iterations: DefaultIterations,
			Integrator: "rk4",
		},
		Run: RunConfig{
			Ticks:       DefaultTicks,
			DataDir:     DefaultDataDir,
			RecordEvery: 1,
		},
	}
}

func (c *Config) Validate() error {
	switch c.Physics.Backend {
	case "chipmunk", "memory":
	default:
		return fmt.Errorf("unknown physics backend %q", c.Physics.Backend)
	}
	if c.Physics.Dt <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.Dt)
	}
	if c.Physics.Iterations <= 0 {
		return fmt.Errorf("physics.iterations must be positive, got %d", c.Physics.Iterations)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// Settings converts the physics section for a world constructor.
func (c *Config) Settings() physics.Settings {
	return physics.Settings{
		Gravity:    physics.Vec2{X: c.Physics.Gravity[0], Y: c.Physics.Gravity[1]},
		Iterations: c.Physics.Iterations,
		Integrator: c.Physics.Integrator,
	}
}
