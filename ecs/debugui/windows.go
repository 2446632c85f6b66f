package debugui

import "github.com/plus3/dodge/ecs"

// SpawnDebugWindows spawns the stats window and the entity inspector as
// ImguiItem entities. The returned StatsWindow must be fed frame times
// with Record.
func SpawnDebugWindows(storage *ecs.Storage, schedulers ...NamedScheduler) *StatsWindow {
	stats := NewStatsWindow(120, schedulers...)
	inspector := NewEntityInspector(100)

	storage.Spawn(ImguiItem{Render: func() { stats.Render(storage) }})
	storage.Spawn(ImguiItem{Render: func() { inspector.Render(storage) }})
	return stats
}
