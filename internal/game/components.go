// Package game holds the components, resources and systems of the dodge game.
// Nothing in here talks to a window: input arrives through an InputSource
// and drawing is left to the render package.
package game

import (
	"image/color"

	"github.com/plus3/dodge/ecs"
)

// Position is a point in world space: origin at the screen centre, y up.
type Position struct {
	X, Y float64
}

// Speed is a scalar speed in world units per second.
type Speed float64

// Direction is the unit vector an enemy travels along.
type Direction Vec2

// Player tags the player entity.
type Player struct{}

// Enemy tags an enemy entity.
type Enemy struct {
	SpawnedAt float64
	Origin    Position
	Touching  bool
}

// Sprite describes how an entity is drawn: Image tinted by Color, scaled to Size x Size.
type Sprite struct {
	Image string
	Color color.RGBA
	Size  float64
}

// Camera maps world space onto the screen. The camera position is the world
// point drawn at the screen centre.
type Camera struct {
	X, Y float64
	Zoom float64
}

// InputState is the keyboard state sampled at the start of the frame.
type InputState struct {
	Left  bool
	Right bool
}

// Axis folds the arrow keys into -1, 0 or 1.
func (s InputState) Axis() float64 {
	axis := 0.0
	if s.Left {
		axis -= 1
	}
	if s.Right {
		axis += 1
	}
	return axis
}

// Session accumulates statistics for the current run.
type Session struct {
	Seed      int64
	Elapsed   float64
	Frames    int64
	Spawned   int
	Despawned int
	Contacts  int
	Alive     int
	PeakAlive int
}

// RegisterComponents registers every component and resource type used by the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Direction](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[InputState](registry)
	ecs.RegisterComponent[SpawnTimer](registry)
	ecs.RegisterComponent[Session](registry)
}
