package game

import "math"

// SpawnTimer is a countdown that fires every Period seconds of accumulated
// frame time. A frame longer than Period fires more than once, capped at
// MaxCatchUp; the surplus fires are dropped but the phase is kept.
type SpawnTimer struct {
	Period     float64
	MaxCatchUp int

	remaining float64
	dropped   int
}

// NewSpawnTimer returns a timer whose first fire is one full period away.
func NewSpawnTimer(period float64, maxCatchUp int) SpawnTimer {
	return SpawnTimer{
		Period:     period,
		MaxCatchUp: maxCatchUp,
		remaining:  period,
	}
}

// Tick advances the timer by dt and returns how many times it fired.
func (t *SpawnTimer) Tick(dt float64) int {
	if t.Period <= 0 || dt <= 0 {
		return 0
	}

	t.remaining -= dt
	if t.remaining > 0 {
		return 0
	}

	fires := int(math.Floor(-t.remaining/t.Period)) + 1
	t.remaining += float64(fires) * t.Period

	if t.MaxCatchUp > 0 && fires > t.MaxCatchUp {
		t.dropped += fires - t.MaxCatchUp
		fires = t.MaxCatchUp
	}
	return fires
}

// Remaining is the time left until the next fire.
func (t *SpawnTimer) Remaining() float64 {
	return t.remaining
}

// Dropped counts the fires discarded by the catch-up cap.
func (t *SpawnTimer) Dropped() int {
	return t.dropped
}
