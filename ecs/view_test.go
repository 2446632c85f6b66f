package ecs_test

import (
	"testing"

	"github.com/plus3/dodge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	entityId := storage.Spawn(&Position{X: 1, Y: 2}, Score(32))

	view := ecs.NewView[struct {
		*Position
		*Score
	}](storage)

	item := view.Get(entityId)
	require.NotNil(t, item)
	assert.Equal(t, Score(32), *item.Score)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Position.Y)

	// Writes go straight to storage
	item.Position.X = 10
	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, entityId).X)
}

func TestViewMissingComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	entityId := storage.Spawn(&Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(entityId))
}

func TestViewOptionalComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	withName := storage.Spawn(Position{X: 1}, Name{Value: "named"})
	withoutName := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	item := view.Get(withName)
	require.NotNil(t, item)
	require.NotNil(t, item.Name)
	assert.Equal(t, "named", item.Name.Value)

	item = view.Get(withoutName)
	require.NotNil(t, item)
	assert.Nil(t, item.Name)

	assert.Equal(t, 2, view.Count())
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{X: 2}, Velocity{})

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
	}](storage)

	seen := make(map[ecs.EntityId]float32)
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.Id)
		seen[item.Id] = item.Position.X
	}

	assert.Equal(t, map[ecs.EntityId]float32{a: 1, b: 2}, seen)
	assert.Equal(t, b, view.Get(b).Id)
}

func TestViewIterSkipsDeleted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1})
	dead := storage.Spawn(Position{X: 2})
	storage.Spawn(Position{X: 3})
	storage.Delete(dead)

	view := ecs.NewView[struct{ *Position }](storage)

	var xs []float32
	for item := range view.Values() {
		xs = append(xs, item.Position.X)
	}
	assert.ElementsMatch(t, []float32{1, 3}, xs)
	assert.Nil(t, view.Get(dead))
}

func TestViewIterEarlyExit(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 10; i++ {
		storage.Spawn(Position{X: float32(i)})
		storage.Spawn(Position{X: float32(i)}, Score(i))
	}

	view := ecs.NewView[struct{ *Position }](storage)

	count := 0
	for range view.Iter() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	view := ecs.NewView[struct {
		Id ecs.EntityId
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		Id ecs.EntityId
		*Position
		Velocity *Velocity `ecs:"optional"`
	}{Position: &Position{X: 4, Y: 5}})

	assert.Equal(t, float32(4), ecs.ReadComponent[Position](storage, id).X)
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))

	assert.Panics(t, func() {
		view.Spawn(struct {
			Id ecs.EntityId
			*Position
			Velocity *Velocity `ecs:"optional"`
		}{})
	})
}

func TestNewViewPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() { ecs.NewView[struct{ Position Position }](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			A ecs.EntityId
			B ecs.EntityId
		}](storage)
	})
}
