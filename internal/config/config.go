// Package config loads the shipsim YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/behave/internal/core/observability/log"
	"github.com/zeusync/behave/internal/core/sim"
	"github.com/zeusync/behave/internal/core/systems/physics"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root of the configuration file.
type Config struct {
	LogLevel   string           `yaml:"log_level"`
	TickRate   int              `yaml:"tick_rate"`
	Tree       TreeConfig       `yaml:"tree"`
	Ship       ShipConfig       `yaml:"ship"`
	Projectile ProjectileConfig `yaml:"projectile"`
	Server     ServerConfig     `yaml:"server"`
}

// TreeConfig selects the behavior tree. An empty Path uses the built-in tree.
type TreeConfig struct {
	Path           string `yaml:"path"`
	Format         string `yaml:"format"`
	StrictRegistry bool   `yaml:"strict_registry"`
}

type ShipConfig struct {
	PrimaryAttackCooldown time.Duration  `yaml:"primary_attack_cooldown"`
	RotationPerSecond     float64        `yaml:"rotation_per_second"`
	Acceleration          float64        `yaml:"acceleration"`
	Deceleration          float64        `yaml:"deceleration"`
	MaxSpeed              float64        `yaml:"max_speed"`
	Emitters              []physics.Vec2 `yaml:"emitters"`
}

type ProjectileConfig struct {
	Speed    float64       `yaml:"speed"`
	Lifetime time.Duration `yaml:"lifetime"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		TickRate: 50,
		Ship: ShipConfig{
			PrimaryAttackCooldown: 250 * time.Millisecond,
			RotationPerSecond:     180,
			Acceleration:          6,
			Deceleration:          3,
			MaxSpeed:              8,
			Emitters:              []physics.Vec2{{X: 0.5, Y: 0.2}, {X: 0.5, Y: -0.2}},
		},
		Projectile: ProjectileConfig{Speed: 20, Lifetime: time.Second},
		Server:     ServerConfig{Addr: ":8080"},
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and cross-field constraints.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("%w: tick_rate must be in 1..1000, got %d", ErrInvalidConfig, c.TickRate)
	}
	if err := c.World().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for i, e := range c.Ship.Emitters {
		if !e.IsFinite() {
			return fmt.Errorf("%w: ship.emitters[%d] is not finite", ErrInvalidConfig, i)
		}
	}
	if c.Projectile.Speed < 0 {
		return fmt.Errorf("%w: projectile.speed must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Level is the parsed log level.
func (c Config) Level() log.Level {
	lvl, _ := log.ParseLevel(c.LogLevel)
	return lvl
}

// Step is the fixed simulation step.
func (c Config) Step() time.Duration {
	if c.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TickRate)
}

// World converts the file layout into a sim.Config.
func (c Config) World() sim.Config {
	emitters := make([]physics.Vec2, len(c.Ship.Emitters))
	copy(emitters, c.Ship.Emitters)
	return sim.Config{
		Step: c.Step(),
		Ship: sim.ShipConfig{
			PrimaryAttackCooldown: c.Ship.PrimaryAttackCooldown,
			RotationPerSecond:     c.Ship.RotationPerSecond,
			Acceleration:          c.Ship.Acceleration,
			Deceleration:          c.Ship.Deceleration,
			MaxSpeed:              c.Ship.MaxSpeed,
			Emitters:              emitters,
		},
		Projectile: sim.ProjectileConfig{
			Speed:    c.Projectile.Speed,
			Lifetime: c.Projectile.Lifetime,
		},
	}
}
