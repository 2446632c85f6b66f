package debugui

import (
	"testing"

	"github.com/plus3/dodge/ecs"
	"github.com/stretchr/testify/assert"
)

func TestImguiSystemDefersItemRenders(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	var calls []string
	storage.Spawn(ImguiItem{Render: func() { calls = append(calls, "stats") }})
	storage.Spawn(ImguiItem{Render: func() { calls = append(calls, "inspector") }})
	storage.Spawn(ImguiItem{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ImguiSystem{})

	scheduler.Once(1.0 / 60.0)
	assert.ElementsMatch(t, []string{"stats", "inspector"}, calls)

	scheduler.Once(1.0 / 60.0)
	assert.Len(t, calls, 4)
}
