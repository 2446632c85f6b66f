package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/dodge/ecs"
	"github.com/plus3/dodge/internal/game"
)

// Report summarises a headless run.
type Report struct {
	// Configuration
	Mode    string
	Input   string
	Seed    int64
	Despawn string

	// Results
	WallTime      time.Duration
	Session       game.Session
	DroppedSpawns int
	Storage       *ecs.StorageStats
	Systems       []ecs.SystemStats
	UpdateTime    Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// Stats summarises per-frame update durations.
type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Collect copies the end state of world into the report.
func (r *Report) Collect(world *game.World) {
	r.Session = world.Session()
	r.Storage = world.Storage.CollectStats()
	r.Systems = world.Update.GetStats().Systems

	var timer *game.SpawnTimer
	if world.Storage.ReadSingleton(&timer) {
		r.DroppedSpawns = timer.Dropped()
	}
	r.UpdateTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Dodge Simulation Report

## Run
- **Mode:** {{.Mode}}
- **Input:** {{.Input}}
- **Seed:** {{.Seed}}
- **Despawn Policy:** {{.Despawn}}
- **Frames:** {{.Session.Frames}}
- **Game Time:** {{printf "%.2f" .Session.Elapsed}}s
- **Wall Time:** {{.WallTime}}

## Enemies
- **Spawned:** {{.Session.Spawned}}
- **Despawned:** {{.Session.Despawned}}
- **Alive:** {{.Session.Alive}}
- **Peak Alive:** {{.Session.PeakAlive}}
- **Dropped Spawns:** {{.DroppedSpawns}}
- **Contacts:** {{.Session.Contacts}}

## Storage
- **Archetypes:** {{.Storage.ArchetypeCount}}
- **Entities:** {{.Storage.TotalEntityCount}}
- **Singletons:** {{.Storage.SingletonCount}}

## Systems
| System | Runs | Avg | Max | Total |
|--------|------|-----|-----|-------|
{{range .Systems}}| {{.Name}}{{if .Startup}} (startup){{end}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{end}}
{{- if .UpdateTime.Samples}}
## Update Time (Frame)
- **Avg:** {{.UpdateTime.Avg}}
- **Min:** {{.UpdateTime.Min}}
- **Max:** {{.UpdateTime.Max}}
{{end}}
## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: delta {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}} bytes
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}} cycles, {{ns .MemStatsEnd.PauseTotalNs}} total pause
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
