package ecs_test

import (
	"fmt"

	"github.com/plus3/dodge/ecs"
)

type GameConfig struct {
	MaxPlayers int
	Difficulty string
}

type GameScore struct {
	Points int
	Level  int
}

// ExampleNewSingleton demonstrates creating and accessing singleton components.
// Singletons are global components not associated with any entity, useful for
// game state, configuration, or other application-wide data.
func ExampleNewSingleton() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	config := ecs.NewSingleton[GameConfig](storage, GameConfig{
		MaxPlayers: 4,
		Difficulty: "Normal",
	})

	fmt.Printf("Config: %d players, %s difficulty\n", config.Get().MaxPlayers, config.Get().Difficulty)

	config.Get().Difficulty = "Hard"

	// A second accessor sees the same data; its initializer is ignored
	sameConfig := ecs.NewSingleton[GameConfig](storage, GameConfig{Difficulty: "Easy"})
	fmt.Printf("Same config: %s difficulty\n", sameConfig.Get().Difficulty)

	// Output:
	// Config: 4 players, Normal difficulty
	// Same config: Hard difficulty
}

// ExampleStorage_ReadSingleton demonstrates the ReadSingleton API for
// convenient singleton access outside of systems.
func ExampleStorage_ReadSingleton() {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	storage.AddSingleton(GameConfig{MaxPlayers: 8, Difficulty: "Expert"})

	var config *GameConfig
	if storage.ReadSingleton(&config) {
		fmt.Printf("Game: %d players, %s mode\n", config.MaxPlayers, config.Difficulty)
	}

	// Replacing a singleton keeps existing pointers valid
	storage.AddSingleton(GameConfig{MaxPlayers: 2, Difficulty: "Casual"})
	fmt.Printf("Game: %d players, %s mode\n", config.MaxPlayers, config.Difficulty)

	var score *GameScore
	if storage.ReadSingleton(&score) {
		fmt.Println("Score exists")
	} else {
		fmt.Println("Score not found")
	}

	// Output:
	// Game: 8 players, Expert mode
	// Game: 2 players, Casual mode
	// Score not found
}
