package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/dodge/ecs"
	"github.com/plus3/dodge/internal/config"
)

// Options carries the collaborators a World needs besides its configuration.
type Options struct {
	Input  InputSource
	Logger *log.Logger
	// Seed overrides cfg.Seed when non-zero. A zero seed everywhere means time based.
	Seed int64
}

// World owns the ECS storage and the update scheduler of one game session.
type World struct {
	Config   config.Config
	Registry *ecs.ComponentRegistry
	Storage  *ecs.Storage
	Update   *ecs.Scheduler
	Seed     int64

	session *ecs.Singleton[Session]
}

// NewWorld builds the storage, its resources and the ordered update systems.
func NewWorld(cfg config.Config, opts Options) *World {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton[InputState](storage)
	ecs.NewSingleton[SpawnTimer](storage, NewSpawnTimer(cfg.Enemy.SpawnPeriod, cfg.Enemy.MaxCatchUp))
	session := ecs.NewSingleton[Session](storage, Session{Seed: seed})

	update := ecs.NewScheduler(storage)
	update.RegisterStartup(&SetupSystem{Player: cfg.Player, Image: cfg.Sprite.Path})
	update.Register(&InputSystem{Source: opts.Input})
	update.Register(&PlayerMovementSystem{})
	update.Register(&EnemySpawnerSystem{
		Enemy:  cfg.Enemy,
		Image:  cfg.Sprite.Path,
		Rand:   rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)),
		Logger: logger.WithPrefix("spawner"),
	})
	update.Register(&EnemyMovementSystem{
		Policy:  cfg.Enemy.Despawn,
		BoundsX: cfg.Enemy.BoundsX,
		BoundsY: cfg.Enemy.BoundsY,
		Logger:  logger.WithPrefix("mover"),
	})
	update.Register(&ContactSystem{Logger: logger.WithPrefix("contact")})
	update.Register(&SessionSystem{})

	return &World{
		Config:   cfg,
		Registry: registry,
		Storage:  storage,
		Update:   update,
		Seed:     seed,
		session:  session,
	}
}

// Step advances the world by dt seconds.
func (w *World) Step(dt float64) {
	w.Update.Once(dt)
}

// Session returns a copy of the current session statistics.
func (w *World) Session() Session {
	return *w.session.Get()
}
