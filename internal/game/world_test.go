package game_test

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/dodge/ecs"
	"github.com/plus3/dodge/internal/config"
	"github.com/plus3/dodge/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type enemyView struct {
	ecs.EntityId
	*game.Position
	*game.Speed
	*game.Direction
	*game.Enemy
}

type playerView struct {
	*game.Position
	*game.Player
}

func newWorld(t *testing.T, cfg config.Config, input game.InputSource) *game.World {
	t.Helper()
	require.NoError(t, cfg.Validate())
	return game.NewWorld(cfg, game.Options{
		Input:  input,
		Logger: log.New(io.Discard),
		Seed:   42,
	})
}

func enemies(w *game.World) []enemyView {
	var out []enemyView
	for e := range ecs.NewView[enemyView](w.Storage).Values() {
		out = append(out, e)
	}
	return out
}

func player(t *testing.T, w *game.World) playerView {
	t.Helper()
	var players []playerView
	for p := range ecs.NewView[playerView](w.Storage).Values() {
		players = append(players, p)
	}
	require.Len(t, players, 1)
	return players[0]
}

func TestSetupSpawnsPlayerAndCamera(t *testing.T) {
	w := newWorld(t, config.Default(), nil)
	w.Step(0)

	p := player(t, w)
	assert.Equal(t, game.Position{X: 0, Y: -200}, *p.Position)

	var camera *game.Camera
	require.True(t, w.Storage.ReadSingleton(&camera))
	assert.Equal(t, 1.0, camera.Zoom)

	sprite := ecs.NewView[struct {
		*game.Sprite
		*game.Speed
		*game.Player
	}](w.Storage)
	for s := range sprite.Values() {
		assert.Equal(t, 50.0, s.Sprite.Size)
		assert.Equal(t, "sprites/game.png", s.Sprite.Image)
		assert.Equal(t, uint8(255), s.Sprite.Color.B)
		assert.Equal(t, game.Speed(300), *s.Speed)
	}
}

func TestPlayerMovement(t *testing.T) {
	cases := []struct {
		name  string
		input game.InputState
		sign  float64
	}{
		{"right", game.InputState{Right: true}, 1},
		{"left", game.InputState{Left: true}, -1},
		{"both", game.InputState{Left: true, Right: true}, 0},
		{"neither", game.InputState{}, 0},
	}

	for _, tc := range cases {
		for _, dt := range []float64{0, 1.0 / 60.0, 0.25, 1.5} {
			w := newWorld(t, config.Default(), game.StaticInput(tc.input))
			w.Step(0)
			before := *player(t, w).Position

			w.Step(dt)
			after := *player(t, w).Position

			assert.InDelta(t, before.X+tc.sign*300*dt, after.X, 1e-9, "%s dt=%v", tc.name, dt)
			assert.Equal(t, before.Y, after.Y, "%s: player never moves vertically", tc.name)
		}
	}
}

func TestPlayerFollowsScriptedInput(t *testing.T) {
	script := &game.ScriptedInput{Frames: []game.InputState{
		{Right: true},
		{Right: true},
		{Left: true},
		{},
	}}
	w := newWorld(t, config.Default(), script)

	for range 4 {
		w.Step(0.1)
	}

	assert.InDelta(t, 30.0, player(t, w).Position.X, 1e-9)
}

func TestFirstEnemySpawnsAfterPeriod(t *testing.T) {
	w := newWorld(t, config.Default(), nil)

	for range 3 {
		w.Step(0.5)
	}
	assert.Empty(t, enemies(w))

	w.Step(0.5)
	assert.Len(t, enemies(w), 1)
	assert.Equal(t, 1, w.Session().Spawned)
}

func TestSpawnedEnemiesAreWellFormed(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.SpawnPeriod = 0.125
	cfg.Enemy.MaxCatchUp = 100

	w := newWorld(t, cfg, nil)
	for range 5 {
		w.Step(4.0)
	}

	spawned := enemies(w)
	require.Len(t, spawned, 5*32)

	for _, e := range spawned {
		assert.GreaterOrEqual(t, e.Enemy.Origin.X, -400.0)
		assert.Less(t, e.Enemy.Origin.X, 400.0)
		assert.Equal(t, 300.0, e.Enemy.Origin.Y)
		assert.InDelta(t, 1.0, game.Vec2(*e.Direction).Len(), 1e-9)
		assert.Equal(t, game.Speed(150), *e.Speed)
	}
}

func TestEnemyPositionIsLinearInElapsedTime(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.SpawnPeriod = 1.0

	w := newWorld(t, cfg, nil)
	w.Step(1.0)

	spawned := enemies(w)
	require.Len(t, spawned, 1)
	origin := *spawned[0].Position
	assert.Equal(t, spawned[0].Enemy.Origin, origin)

	dts := []float64{0.1, 0.016, 0.2, 0.033, 0.3}
	sum := 0.0
	for _, dt := range dts {
		w.Step(dt)
		sum += dt
	}

	spawned = enemies(w)
	require.Len(t, spawned, 1)
	e := spawned[0]
	d := game.Vec2(*e.Direction)
	assert.InDelta(t, origin.X+d.X*150*sum, e.Position.X, 1e-9)
	assert.InDelta(t, origin.Y+d.Y*150*sum, e.Position.Y, 1e-9)
}

func TestDespawnNeverKeepsOffscreenEnemies(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.SpawnPeriod = 1.0
	cfg.Enemy.MaxAlive = 1
	cfg.Enemy.Despawn = config.DespawnNever

	w := newWorld(t, cfg, nil)
	w.Step(1.0)
	w.Step(100)

	spawned := enemies(w)
	require.Len(t, spawned, 1)
	p := spawned[0].Position
	assert.True(t, math.Abs(p.X) > 800 || math.Abs(p.Y) > 600, "enemy should be far off screen, got %+v", *p)

	w.Step(100)
	assert.Len(t, enemies(w), 1)
	assert.Equal(t, 0, w.Session().Despawned)
}

func TestDespawnOffscreenRemovesEnemies(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.SpawnPeriod = 1.0
	cfg.Enemy.MaxAlive = 1
	cfg.Enemy.Despawn = config.DespawnOffscreen

	w := newWorld(t, cfg, nil)
	w.Step(1.0)
	require.Len(t, enemies(w), 1)

	w.Step(100)
	assert.Empty(t, enemies(w))

	session := w.Session()
	assert.Equal(t, 1, session.Spawned)
	assert.Equal(t, 1, session.Despawned)
	assert.Equal(t, 0, session.Alive)
}

func TestDespawnOffscreenKeepsVisibleEnemies(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.SpawnPeriod = 1.0
	cfg.Enemy.Despawn = config.DespawnOffscreen

	w := newWorld(t, cfg, nil)
	w.Step(1.0)
	// 150 units/s for 0.5s cannot leave the 800x600 bounds from y=300
	w.Step(0.5)

	assert.Len(t, enemies(w), 1)
}

func TestMaxAliveCapsSpawns(t *testing.T) {
	cfg := config.Default()
	cfg.Enemy.SpawnPeriod = 0.1
	cfg.Enemy.MaxCatchUp = 50
	cfg.Enemy.MaxAlive = 7

	w := newWorld(t, cfg, nil)
	for range 3 {
		w.Step(1.0)
	}

	assert.Len(t, enemies(w), 7)
	assert.Equal(t, 7, w.Session().PeakAlive)
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() []game.Position {
		w := newWorld(t, config.Default(), nil)
		for range 600 {
			w.Step(1.0 / 60.0)
		}
		var out []game.Position
		for _, e := range enemies(w) {
			out = append(out, e.Enemy.Origin)
		}
		return out
	}

	a, b := run(), run()
	require.NotEmpty(t, a)
	assert.ElementsMatch(t, a, b)
}

func TestSessionTracksTime(t *testing.T) {
	w := newWorld(t, config.Default(), nil)
	for range 10 {
		w.Step(0.5)
	}

	session := w.Session()
	assert.InDelta(t, 5.0, session.Elapsed, 1e-9)
	assert.Equal(t, int64(10), session.Frames)
	assert.Equal(t, 2, session.Spawned)
	assert.Equal(t, 2, session.Alive)
	assert.Equal(t, int64(42), session.Seed)
}
