package config

import (
	_ "embed"
)

//go:embed defaults/dodge.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/dodge.yaml.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "Dodge",
		},
		Player: PlayerConfig{
			StartX: 0,
			StartY: -200,
			Speed:  300,
			Size:   50,
			Color:  RGB{0, 0, 255},
		},
		Enemy: EnemyConfig{
			Speed:       150,
			Size:        40,
			Color:       RGB{255, 0, 0},
			SpawnPeriod: 2.0,
			SpawnXMin:   -400,
			SpawnXMax:   400,
			SpawnY:      300,
			MaxCatchUp:  4,
			MaxAlive:    0,
			Despawn:     DespawnNever,
			BoundsX:     800,
			BoundsY:     600,
		},
		Sprite: SpriteConfig{
			Path: "sprites/game.png",
		},
		Storage: StorageConfig{
			Record: true,
			Path:   "~/.dodge/sessions.db",
		},
	}
}
