package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/dodge/ecs"
)

// NamedScheduler labels a scheduler in the stats window.
type NamedScheduler struct {
	Name      string
	Scheduler *ecs.Scheduler
}

// StatsWindow shows storage counts, a frame time plot and per-system timings.
type StatsWindow struct {
	Schedulers []NamedScheduler

	frameHistory []float32
	frameIndex   int
}

func NewStatsWindow(historyFrames int, schedulers ...NamedScheduler) *StatsWindow {
	return &StatsWindow{
		Schedulers:   schedulers,
		frameHistory: make([]float32, max(historyFrames, 1)),
	}
}

// Record adds a frame time sample in seconds.
func (w *StatsWindow) Record(deltaTime float64) {
	w.frameHistory[w.frameIndex] = float32(deltaTime * 1000.0)
	w.frameIndex = (w.frameIndex + 1) % len(w.frameHistory)
}

// AverageFrameTime is the mean of the recorded samples in milliseconds.
func (w *StatsWindow) AverageFrameTime() float32 {
	var total float32
	for _, ft := range w.frameHistory {
		total += ft
	}
	return total / float32(len(w.frameHistory))
}

func (w *StatsWindow) Render(storage *ecs.Storage) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 100), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(380, 360), imgui.CondOnce)
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	imgui.Text(fmt.Sprintf("Total Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))

	avg := w.AverageFrameTime()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &w.frameHistory[0], int32(len(w.frameHistory)))

	for _, named := range w.Schedulers {
		w.renderScheduler(named)
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, singletonType := range stats.SingletonTypes {
			imgui.BulletText(singletonType)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (w *StatsWindow) renderScheduler(named NamedScheduler) {
	stats := named.Scheduler.GetStats()
	if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d frames)", named.Name, stats.Frames)) {
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV(named.Name+"Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, system := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			name := system.Name
			if system.Startup {
				name += " (startup)"
			}
			imgui.Text(name)
			imgui.TableNextColumn()
			imgui.Text(formatDuration(system.LastDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(system.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(system.MaxDuration))
		}

		imgui.EndTable()
	}
	imgui.TreePop()
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}

// FrameTimer measures wall-clock time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float64 {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime).Seconds()
	ft.lastFrameTime = now
	return delta
}
