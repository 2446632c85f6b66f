package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/dodge/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactCountsOverlapStarts(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	session := ecs.NewSingleton[Session](storage)

	storage.Spawn(Position{X: 0, Y: -200}, Player{}, Sprite{Size: 50})
	enemyId := storage.Spawn(Position{X: 10, Y: -190}, Enemy{}, Sprite{Size: 40})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ContactSystem{Logger: log.New(io.Discard)})

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	assert.Equal(t, 1, session.Get().Contacts, "a sustained overlap counts once")

	pos := ecs.ReadComponent[Position](storage, enemyId)
	require.NotNil(t, pos)
	pos.Y = 300
	scheduler.Once(0.016)
	assert.False(t, ecs.ReadComponent[Enemy](storage, enemyId).Touching)

	pos.Y = -200
	scheduler.Once(0.016)
	assert.Equal(t, 2, session.Get().Contacts)
	assert.True(t, ecs.ReadComponent[Enemy](storage, enemyId).Touching)
}
