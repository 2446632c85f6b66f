package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/plus3/dodge/ecs"
	"github.com/plus3/dodge/internal/game"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var backgroundColor = color.RGBA{24, 24, 32, 255}

// Screen is the singleton holding the image being drawn this frame.
type Screen struct {
	*ebiten.Image
}

// SpriteSystem draws every sprite, enemies first so the player stays on top.
type SpriteSystem struct {
	Images *Images

	Camera  ecs.Singleton[game.Camera]
	Screen  ecs.Singleton[Screen]
	Enemies ecs.Query[struct {
		*game.Position
		*game.Sprite
		*game.Enemy
	}]
	Players ecs.Query[struct {
		*game.Position
		*game.Sprite
		*game.Player
	}]
}

func (s *SpriteSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	if screen == nil {
		return
	}
	screen.Fill(backgroundColor)

	var camera game.Camera
	if c := s.Camera.Get(); c != nil {
		camera = *c
	}

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for enemy := range s.Enemies.Values() {
		s.draw(screen, camera, w, h, enemy.Position, enemy.Sprite)
	}
	for player := range s.Players.Values() {
		s.draw(screen, camera, w, h, player.Position, player.Sprite)
	}
}

func (s *SpriteSystem) draw(screen *ebiten.Image, camera game.Camera, w, h int, pos *game.Position, sprite *game.Sprite) {
	img := s.Images.Get(sprite.Image)
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())

	zoom := camera.Zoom
	if zoom == 0 {
		zoom = 1
	}
	sx, sy := WorldToScreen(camera, *pos, w, h)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Translate(-iw/2, -ih/2)
	opts.GeoM.Scale(sprite.Size*zoom/iw, sprite.Size*zoom/ih)
	opts.GeoM.Translate(sx, sy)
	opts.ColorScale.ScaleWithColor(sprite.Color)
	screen.DrawImage(img, opts)
}

// HUDSystem prints the session counters in the top-left corner.
type HUDSystem struct {
	Face font.Face

	Session ecs.Singleton[game.Session]
	Screen  ecs.Singleton[Screen]
}

func (s *HUDSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get().Image
	session := s.Session.Get()
	if screen == nil || session == nil {
		return
	}

	face := s.Face
	if face == nil {
		face = basicfont.Face7x13
	}

	lines := []string{
		fmt.Sprintf("Time: %.1fs", session.Elapsed),
		fmt.Sprintf("Enemies: %d (peak %d)", session.Alive, session.PeakAlive),
		fmt.Sprintf("Contacts: %d", session.Contacts),
		"Arrows: move  Esc: quit",
	}
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range lines {
		text.Draw(screen, line, face, 10, 20+i*lineHeight, color.White)
	}
}

// Renderer runs the draw systems against the storage of a game.World.
type Renderer struct {
	scheduler *ecs.Scheduler
	screen    *ecs.Singleton[Screen]
}

// NewRenderer registers the draw systems on their own scheduler so drawing
// never advances the update clock.
func NewRenderer(world *game.World, images *Images) *Renderer {
	screen := ecs.NewSingleton[Screen](world.Storage)

	scheduler := ecs.NewScheduler(world.Storage)
	scheduler.Register(&SpriteSystem{Images: images})
	scheduler.Register(&HUDSystem{})

	return &Renderer{
		scheduler: scheduler,
		screen:    screen,
	}
}

// Scheduler exposes the draw scheduler, mainly for its stats.
func (r *Renderer) Scheduler() *ecs.Scheduler {
	return r.scheduler
}

// Draw renders the current world state onto target.
func (r *Renderer) Draw(target *ebiten.Image) {
	r.screen.Get().Image = target
	r.scheduler.Once(0)
	r.screen.Get().Image = nil
}
