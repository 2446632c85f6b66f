package ecs

import (
	"testing"
	"time"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	if stats.ArchetypeCount != 0 {
		t.Errorf("expected 0 archetypes, got %d", stats.ArchetypeCount)
	}
	if stats.TotalEntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 0 {
		t.Errorf("expected 0 singletons, got %d", stats.SingletonCount)
	}

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	doomed := storage.Spawn(200.0, "test")
	storage.Spawn(300.0, "kept")
	storage.Delete(doomed)

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()

	if stats.ArchetypeCount != 2 {
		t.Errorf("expected 2 archetypes, got %d", stats.ArchetypeCount)
	}
	if stats.TotalEntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 2 {
		t.Errorf("expected 2 singletons, got %d", stats.SingletonCount)
	}
	if len(stats.SingletonTypes) != 2 || stats.SingletonTypes[0] != "float64" || stats.SingletonTypes[1] != "string" {
		t.Errorf("unexpected singleton types %v", stats.SingletonTypes)
	}

	if len(stats.ArchetypeBreakdown) != 2 {
		t.Fatalf("expected 2 archetype breakdown entries, got %d", len(stats.ArchetypeBreakdown))
	}
	if stats.ArchetypeBreakdown[0].ID > stats.ArchetypeBreakdown[1].ID {
		t.Errorf("archetype breakdown not sorted: %+v", stats.ArchetypeBreakdown)
	}
	for _, arch := range stats.ArchetypeBreakdown {
		if arch.EntityCount != 2 && arch.EntityCount != 1 {
			t.Errorf("unexpected entity count in %+v", arch)
		}
		if len(arch.ComponentTypes) != 2 {
			t.Errorf("expected 2 component types in %+v", arch)
		}
	}
}

type TestSystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *TestSystem) Execute(frame *UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

func TestSchedulerStats(t *testing.T) {
	registry := NewComponentRegistry()
	storage := NewStorage(registry)
	scheduler := NewScheduler(storage)

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 0 {
		t.Errorf("expected 0 total executions, got %d", stats.TotalExecutions)
	}

	startup := &TestSystem{}
	sys1 := &TestSystem{sleepDur: 1 * time.Millisecond}
	sys2 := &TestSystem{sleepDur: 2 * time.Millisecond}
	scheduler.RegisterStartup(startup)
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats = scheduler.GetStats()

	if stats.SystemCount != 2 || stats.StartupCount != 1 {
		t.Errorf("expected 2 systems and 1 startup system, got %d and %d", stats.SystemCount, stats.StartupCount)
	}
	if stats.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", stats.Frames)
	}
	if stats.TotalExecutions != 7 {
		t.Errorf("expected 7 total executions (1 startup + 2 systems * 3 runs), got %d", stats.TotalExecutions)
	}
	if len(stats.Systems) != 3 {
		t.Fatalf("expected 3 system stats, got %d", len(stats.Systems))
	}
	if !stats.Systems[0].Startup || stats.Systems[0].ExecutionCount != 1 {
		t.Errorf("expected startup system first with 1 execution, got %+v", stats.Systems[0])
	}

	for _, sysStats := range stats.Systems[1:] {
		if sysStats.Name != "TestSystem" {
			t.Errorf("expected system name 'TestSystem', got '%s'", sysStats.Name)
		}
		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}
		if sysStats.MinDuration == 0 || sysStats.MaxDuration == 0 || sysStats.AvgDuration == 0 {
			t.Errorf("expected non-zero durations, got %+v", sysStats)
		}
		if sysStats.MinDuration > sysStats.AvgDuration {
			t.Errorf("min duration (%v) should be <= avg duration (%v)", sysStats.MinDuration, sysStats.AvgDuration)
		}
		if sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("avg duration (%v) should be <= max duration (%v)", sysStats.AvgDuration, sysStats.MaxDuration)
		}
	}

	if sys1.executeCount != 3 || sys2.executeCount != 3 || startup.executeCount != 1 {
		t.Errorf("unexpected execute counts %d, %d, %d", sys1.executeCount, sys2.executeCount, startup.executeCount)
	}
}

func TestSchedulerStatsBeforeFirstRun(t *testing.T) {
	scheduler := NewScheduler(NewStorage(NewComponentRegistry()))
	scheduler.Register(&TestSystem{})

	stats := scheduler.GetStats()
	if len(stats.Systems) != 1 {
		t.Fatalf("expected 1 system stat, got %d", len(stats.Systems))
	}
	if got := stats.Systems[0]; got.ExecutionCount != 0 || got.MinDuration != 0 || got.AvgDuration != 0 || got.MaxDuration != 0 {
		t.Errorf("expected zero durations before the first run, got %+v", got)
	}
}
