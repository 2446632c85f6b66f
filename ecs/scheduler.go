package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	StartupCount    int
	Frames          int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Startup        bool
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *systemStatsInternal) record(duration time.Duration) {
	s.executionCount++
	s.lastDuration = duration
	s.totalDuration += duration
	s.minDuration = min(s.minDuration, duration)
	s.maxDuration = max(s.maxDuration, duration)
}

// storageInitializer is implemented by Query and Singleton fields.
type storageInitializer interface {
	Init(storage *Storage)
}

type registeredSystem struct {
	system  System
	queries []queryExecutor
	stats   *systemStatsInternal
}

// Scheduler manages and executes systems in order.
// Startup systems run once, before the first update frame.
type Scheduler struct {
	storage *Storage
	startup []*registeredSystem
	systems []*registeredSystem

	started bool
	frames  int64
	elapsed float64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
	}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds an update system to the scheduler and initializes its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, s.prepare(system))
}

// RegisterStartup adds a system that runs exactly once, before the first update.
// Registering after the first frame has no effect on the current run.
func (s *Scheduler) RegisterStartup(system System) {
	s.startup = append(s.startup, s.prepare(system))
}

func (s *Scheduler) prepare(system System) *registeredSystem {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	return &registeredSystem{
		system:  system,
		queries: s.initializeFields(system),
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
}

func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		initializer, ok := field.Addr().Interface().(storageInitializer)
		if !ok {
			continue
		}
		initializer.Init(s.storage)

		if query, ok := initializer.(queryExecutor); ok {
			queries = append(queries, query)
		}
	}

	return queries
}

func (s *Scheduler) execute(rs *registeredSystem, frame *UpdateFrame) {
	start := time.Now()
	for _, query := range rs.queries {
		query.Execute()
	}
	rs.system.Execute(frame)
	rs.stats.record(time.Since(start))
}

func (s *Scheduler) runStartup() {
	s.started = true
	if len(s.startup) == 0 {
		return
	}

	frame := newUpdateFrame(0, s.elapsed, s.storage)
	for _, rs := range s.startup {
		s.execute(rs, frame)
	}
	frame.Commands.Flush(s.storage)
}

// Once executes all registered systems once with the given delta time.
// Deferred commands are flushed after the last system.
func (s *Scheduler) Once(dt float64) {
	if !s.started {
		s.runStartup()
	}

	s.elapsed += dt
	s.frames++

	frame := newUpdateFrame(dt, s.elapsed, s.storage)
	for _, rs := range s.systems {
		s.execute(rs, frame)
	}

	frame.Commands.Flush(s.storage)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Elapsed returns the sum of all delta times passed to Once.
func (s *Scheduler) Elapsed() float64 {
	return s.elapsed
}

// GetStats returns statistics about system execution.
// Startup systems are listed first.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:  len(s.systems),
		StartupCount: len(s.startup),
		Frames:       s.frames,
		Systems:      make([]SystemStats, 0, len(s.startup)+len(s.systems)),
	}

	collect := func(rs *registeredSystem, startup bool) {
		internal := rs.stats
		var avgDuration, minDuration time.Duration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems = append(stats.Systems, SystemStats{
			Name:           internal.name,
			Startup:        startup,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
		stats.TotalExecutions += internal.executionCount
	}

	for _, rs := range s.startup {
		collect(rs, true)
	}
	for _, rs := range s.systems {
		collect(rs, false)
	}

	return stats
}
