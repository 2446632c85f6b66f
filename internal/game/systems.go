package game

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/plus3/dodge/internal/config"
	"github.com/plus3/dodge/ecs"
)

// SetupSystem creates the camera and the player. It is registered as a startup system.
type SetupSystem struct {
	Player config.PlayerConfig
	Image  string
}

func (s *SetupSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Storage.AddSingleton(Camera{Zoom: 1})

	frame.Commands.Spawn(
		Position{X: s.Player.StartX, Y: s.Player.StartY},
		Speed(s.Player.Speed),
		Player{},
		Sprite{
			Image: s.Image,
			Color: s.Player.Color.RGBA(),
			Size:  s.Player.Size,
		},
	)
}

// PlayerMovementSystem moves the player horizontally by axis * speed * dt.
type PlayerMovementSystem struct {
	Input   ecs.Singleton[InputState]
	Players ecs.Query[struct {
		*Position
		*Speed
		*Player
	}]
}

func (s *PlayerMovementSystem) Execute(frame *ecs.UpdateFrame) {
	axis := s.Input.Get().Axis()
	if axis == 0 {
		return
	}

	for player := range s.Players.Values() {
		player.Position.X += axis * float64(*player.Speed) * frame.DeltaTime
	}
}

// EnemySpawnerSystem spawns enemies along the top edge each time the spawn timer fires.
type EnemySpawnerSystem struct {
	Enemy  config.EnemyConfig
	Image  string
	Rand   *rand.Rand
	Logger *log.Logger

	Timer   ecs.Singleton[SpawnTimer]
	Session ecs.Singleton[Session]
	Enemies ecs.Query[struct{ *Enemy }]
}

func (s *EnemySpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	fires := s.Timer.Get().Tick(frame.DeltaTime)
	if fires == 0 {
		return
	}

	alive := s.Enemies.Len()
	session := s.Session.Get()
	for range fires {
		if s.Enemy.MaxAlive > 0 && alive >= s.Enemy.MaxAlive {
			s.Logger.Debug("spawn skipped", "alive", alive, "max", s.Enemy.MaxAlive)
			continue
		}

		pos, dir := s.roll()
		frame.Commands.Spawn(
			pos,
			Speed(s.Enemy.Speed),
			Direction(dir),
			Enemy{SpawnedAt: frame.Elapsed, Origin: pos},
			Sprite{
				Image: s.Image,
				Color: s.Enemy.Color.RGBA(),
				Size:  s.Enemy.Size,
			},
		)
		alive++
		session.Spawned++
		s.Logger.Debug("enemy spawned", "x", pos.X, "y", pos.Y, "dx", dir.X, "dy", dir.Y)
	}
}

// roll draws a spawn point in [SpawnXMin, SpawnXMax) x {SpawnY} and a unit direction.
func (s *EnemySpawnerSystem) roll() (Position, Vec2) {
	x := s.Enemy.SpawnXMin + s.Rand.Float64()*(s.Enemy.SpawnXMax-s.Enemy.SpawnXMin)
	angle := s.Rand.Float64() * 2 * math.Pi
	return Position{X: x, Y: s.Enemy.SpawnY}, FromAngle(angle)
}

// EnemyMovementSystem moves every enemy along its direction and applies the despawn policy.
type EnemyMovementSystem struct {
	Policy  config.DespawnPolicy
	BoundsX float64
	BoundsY float64
	Logger  *log.Logger

	Session ecs.Singleton[Session]
	Enemies ecs.Query[struct {
		ecs.EntityId
		*Position
		*Speed
		*Direction
		*Enemy
	}]
}

func (s *EnemyMovementSystem) Execute(frame *ecs.UpdateFrame) {
	for enemy := range s.Enemies.Values() {
		step := Vec2(*enemy.Direction).Scale(float64(*enemy.Speed) * frame.DeltaTime)
		enemy.Position.X += step.X
		enemy.Position.Y += step.Y

		if !s.Offscreen(*enemy.Position) {
			continue
		}

		switch s.Policy {
		case config.DespawnOffscreen:
			frame.Commands.Delete(enemy.EntityId)
			s.Session.Get().Despawned++
			s.Logger.Debug("enemy despawned", "x", enemy.Position.X, "y", enemy.Position.Y, "age", frame.Elapsed-enemy.Enemy.SpawnedAt)
		case config.DespawnNever:
		}
	}
}

// Offscreen reports whether p lies outside the despawn bounds.
func (s *EnemyMovementSystem) Offscreen(p Position) bool {
	return math.Abs(p.X) > s.BoundsX || math.Abs(p.Y) > s.BoundsY
}

// ContactSystem counts the frames on which an enemy starts overlapping the player.
// Contacts have no gameplay consequence.
type ContactSystem struct {
	Logger *log.Logger

	Session ecs.Singleton[Session]
	Players ecs.Query[struct {
		*Position
		*Sprite
		*Player
	}]
	Enemies ecs.Query[struct {
		*Position
		*Sprite
		*Enemy
	}]
}

func (s *ContactSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	for enemy := range s.Enemies.Values() {
		touching := false
		for player := range s.Players.Values() {
			if Overlaps(*player.Position, player.Sprite.Size, *enemy.Position, enemy.Sprite.Size) {
				touching = true
				break
			}
		}

		if touching && !enemy.Enemy.Touching {
			session.Contacts++
			s.Logger.Debug("contact", "x", enemy.Position.X, "y", enemy.Position.Y, "total", session.Contacts)
		}
		enemy.Enemy.Touching = touching
	}
}

// Overlaps reports whether two centre-anchored squares intersect.
func Overlaps(a Position, sizeA float64, b Position, sizeB float64) bool {
	half := (sizeA + sizeB) / 2
	return math.Abs(a.X-b.X) < half && math.Abs(a.Y-b.Y) < half
}

// SessionSystem keeps the session clock and alive counts current. Alive is
// derived from the spawn and despawn counters so it already reflects the
// commands this frame will flush.
type SessionSystem struct {
	Session ecs.Singleton[Session]
}

func (s *SessionSystem) Execute(frame *ecs.UpdateFrame) {
	session := s.Session.Get()
	session.Elapsed = frame.Elapsed
	session.Frames++
	session.Alive = session.Spawned - session.Despawned
	session.PeakAlive = max(session.PeakAlive, session.Alive)
}
