// Package config provides YAML-based configuration loading and validation
// for the dodge game.
package config

import (
	"errors"
	"fmt"
	"image/color"
)

// DespawnPolicy decides what happens to an enemy that leaves the bounds.
type DespawnPolicy string

const (
	// DespawnNever keeps every enemy for the life of the process.
	DespawnNever DespawnPolicy = "never"
	// DespawnOffscreen deletes enemies once they are outside the bounds.
	DespawnOffscreen DespawnPolicy = "offscreen"
)

// Config contains all configuration for a dodge session.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Player  PlayerConfig  `yaml:"player"`
	Enemy   EnemyConfig   `yaml:"enemy"`
	Sprite  SpriteConfig  `yaml:"sprite"`
	Seed    int64         `yaml:"seed"`
	Debug   bool          `yaml:"debug"`
	Storage StorageConfig `yaml:"storage"`
}

// WindowConfig defines the logical screen.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// PlayerConfig defines the player sprite and movement.
type PlayerConfig struct {
	StartX float64 `yaml:"start_x"`
	StartY float64 `yaml:"start_y"`
	Speed  float64 `yaml:"speed"`
	Size   float64 `yaml:"size"`
	Color  RGB     `yaml:"color"`
}

// EnemyConfig defines enemy spawning, movement and despawning.
type EnemyConfig struct {
	Speed       float64       `yaml:"speed"`
	Size        float64       `yaml:"size"`
	Color       RGB           `yaml:"color"`
	SpawnPeriod float64       `yaml:"spawn_period"`
	SpawnXMin   float64       `yaml:"spawn_x_min"`
	SpawnXMax   float64       `yaml:"spawn_x_max"`
	SpawnY      float64       `yaml:"spawn_y"`
	MaxCatchUp  int           `yaml:"max_catch_up"`
	MaxAlive    int           `yaml:"max_alive"`
	Despawn     DespawnPolicy `yaml:"despawn"`
	BoundsX     float64       `yaml:"bounds_x"`
	BoundsY     float64       `yaml:"bounds_y"`
}

// SpriteConfig points at the image shared by all sprites.
type SpriteConfig struct {
	Path string `yaml:"path"`
}

// StorageConfig controls session recording.
type StorageConfig struct {
	Record bool   `yaml:"record"`
	Path   string `yaml:"path"`
}

// RGB is an opaque colour written as [r, g, b] in YAML.
type RGB [3]uint8

// RGBA converts the colour for drawing.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player.speed must not be negative, got %g", c.Player.Speed))
	}
	if c.Player.Size <= 0 {
		errs = append(errs, fmt.Errorf("player.size must be positive, got %g", c.Player.Size))
	}
	if c.Enemy.Speed < 0 {
		errs = append(errs, fmt.Errorf("enemy.speed must not be negative, got %g", c.Enemy.Speed))
	}
	if c.Enemy.Size <= 0 {
		errs = append(errs, fmt.Errorf("enemy.size must be positive, got %g", c.Enemy.Size))
	}
	if c.Enemy.SpawnPeriod <= 0 {
		errs = append(errs, fmt.Errorf("enemy.spawn_period must be positive, got %g", c.Enemy.SpawnPeriod))
	}
	if c.Enemy.SpawnXMin >= c.Enemy.SpawnXMax {
		errs = append(errs, fmt.Errorf("enemy spawn range [%g, %g) is empty", c.Enemy.SpawnXMin, c.Enemy.SpawnXMax))
	}
	if c.Enemy.MaxCatchUp < 1 {
		errs = append(errs, fmt.Errorf("enemy.max_catch_up must be at least 1, got %d", c.Enemy.MaxCatchUp))
	}
	if c.Enemy.MaxAlive < 0 {
		errs = append(errs, fmt.Errorf("enemy.max_alive must not be negative, got %d", c.Enemy.MaxAlive))
	}
	switch c.Enemy.Despawn {
	case DespawnNever, DespawnOffscreen:
	default:
		errs = append(errs, fmt.Errorf("enemy.despawn must be %q or %q, got %q", DespawnNever, DespawnOffscreen, c.Enemy.Despawn))
	}
	if c.Enemy.BoundsX <= 0 || c.Enemy.BoundsY <= 0 {
		errs = append(errs, fmt.Errorf("enemy bounds must be positive, got %gx%g", c.Enemy.BoundsX, c.Enemy.BoundsY))
	}
	if c.Storage.Record && c.Storage.Path == "" {
		errs = append(errs, errors.New("storage.path is required when storage.record is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
