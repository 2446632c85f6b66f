package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/dodge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for _, item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for _, item := range s.Entities.Iter() {
		s.TotalHealth += float64(item.Health.Current)
	}
}

type populateSystem struct {
	Counter ecs.Singleton[Score]
}

func (s *populateSystem) Execute(frame *ecs.UpdateFrame) {
	*s.Counter.Get()++
	frame.Commands.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 10, DY: 20})
}

func TestScheduler(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)

	t.Run("systems run in registration order", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		var order []string
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "a") }))
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "b") }))
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { order = append(order, "c") }))

		scheduler.Once(1.0)
		scheduler.Once(1.0)

		assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
	})

	t.Run("custom state persistence", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		storage.Spawn(Health{Current: 50, Max: 100})
		storage.Spawn(Health{Current: 75, Max: 100})

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)
		assert.Equal(t, 125.0, health.TotalHealth)

		storage.Spawn(Health{Current: 25, Max: 100})

		scheduler.Once(1.0)
		assert.Equal(t, 150.0, health.TotalHealth)
		assert.Equal(t, 2, health.ExecuteCount)
	})

	t.Run("startup runs once before the first update", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		ecs.NewSingleton[Score](storage)
		populate := &populateSystem{}
		movement := &MovementSystem{}
		scheduler.RegisterStartup(populate)
		scheduler.Register(movement)

		scheduler.Once(0.5)
		scheduler.Once(0.5)

		assert.Equal(t, Score(1), *populate.Counter.Get())
		require.Equal(t, 1, movement.Entities.Len())
		for item := range movement.Entities.Values() {
			// Startup spawns are flushed before the first update sees them
			assert.Equal(t, float32(10), item.Position.X)
			assert.Equal(t, float32(20), item.Position.Y)
		}
		assert.Equal(t, 1.0, scheduler.Elapsed())
	})

	t.Run("frame carries delta and elapsed time", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		var deltas, elapsed []float64
		scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
			deltas = append(deltas, frame.DeltaTime)
			elapsed = append(elapsed, frame.Elapsed)
		}))

		scheduler.Once(0.25)
		scheduler.Once(0.5)

		assert.Equal(t, []float64{0.25, 0.5}, deltas)
		assert.Equal(t, []float64{0.25, 0.75}, elapsed)
	})

	t.Run("queries are refreshed before each system", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)
		scheduler.Once(1.0)
		assert.Equal(t, 0, movement.Entities.Len())

		storage.Spawn(Position{}, Velocity{DX: 1})
		scheduler.Once(1.0)
		assert.Equal(t, 1, movement.Entities.Len())
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		assert.Greater(t, movement.ExecuteCount, 0)
	})
}
