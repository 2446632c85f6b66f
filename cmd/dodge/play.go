package main

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/spf13/cobra"

	"github.com/plus3/dodge/ecs"
	"github.com/plus3/dodge/ecs/debugui"
	debugui_ebiten "github.com/plus3/dodge/ecs/debugui/ebiten"
	"github.com/plus3/dodge/internal/config"
	"github.com/plus3/dodge/internal/game"
	"github.com/plus3/dodge/internal/render"
)

// maxFrameDelta caps the delta fed to the update systems after a window stall.
const maxFrameDelta = 0.25

var flagDebug bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Open the game window.

Controls:
  Left/Right  - Move
  Esc         - Quit

The session is recorded in the sessions database when storage.record is
enabled in the config.

Examples:
  dodge play
  dodge play --debug
  dodge play --seed 42 --config ./configs/dodge.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Show the ImGui debug overlay")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger, cfg, err := setup()
	if err != nil {
		return err
	}
	if flagDebug {
		cfg.Debug = true
	}

	g := newDodgeGame(cfg, logger)
	logger.Info("starting", "seed", g.world.Seed, "despawn", cfg.Enemy.Despawn, "debug", cfg.Debug)

	err = ebiten.RunGame(g)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	session := g.world.Session()
	logger.Info("game over", "time", session.Elapsed, "spawned", session.Spawned, "contacts", session.Contacts, "peak", session.PeakAlive)
	if cfg.Storage.Record {
		saveSession(logger, cfg, "play", g.world)
	}
	return nil
}

// dodgeGame implements ebiten.Game on top of a game.World.
type dodgeGame struct {
	cfg      config.Config
	world    *game.World
	renderer *render.Renderer

	// debug overlay, nil unless cfg.Debug
	imgui   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	overlay *ecs.Scheduler
	stats   *debugui.StatsWindow

	last time.Time
}

func newDodgeGame(cfg config.Config, logger *log.Logger) *dodgeGame {
	g := &dodgeGame{cfg: cfg}

	g.world = game.NewWorld(cfg, game.Options{
		Input:  game.InputFunc(g.pollKeyboard),
		Logger: logger,
		Seed:   flagSeed,
	})
	g.renderer = render.NewRenderer(g.world, render.NewImages(logger.WithPrefix("assets")))

	if cfg.Debug {
		debugui.RegisterComponents(g.world.Registry)
		storage := g.world.Storage

		g.imgui = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage,
			debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height))
		ecs.NewSingleton[debugui.ImguiInputState](storage)

		g.overlay = ecs.NewScheduler(storage)
		g.overlay.Register(&debugui.ImguiSystem{})
		g.stats = debugui.SpawnDebugWindows(storage,
			debugui.NamedScheduler{Name: "update", Scheduler: g.world.Update},
			debugui.NamedScheduler{Name: "draw", Scheduler: g.renderer.Scheduler()},
		)
		spawnSessionWindow(storage)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}

	return g
}

// pollKeyboard reads the arrow keys unless the debug overlay has keyboard focus.
func (g *dodgeGame) pollKeyboard() game.InputState {
	var ui *debugui.ImguiInputState
	if g.world.Storage.ReadSingleton(&ui) && ui.WantCaptureKeyboard {
		return game.InputState{}
	}
	return game.InputState{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
}

func (g *dodgeGame) frameDelta() float64 {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
		return 1.0 / float64(ebiten.TPS())
	}
	dt := now.Sub(g.last).Seconds()
	g.last = now
	return min(dt, maxFrameDelta)
}

func (g *dodgeGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := g.frameDelta()
	if g.imgui == nil {
		g.world.Step(dt)
		return nil
	}

	g.imgui.Get().BeginFrame()
	g.stats.Record(dt)
	g.overlay.Once(dt)
	g.world.Step(dt)
	g.imgui.Get().EndFrame()
	return nil
}

func (g *dodgeGame) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.imgui != nil {
		g.imgui.Get().Draw(screen)
	}
}

func (g *dodgeGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Get().Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.cfg.Window.Width, g.cfg.Window.Height
}
