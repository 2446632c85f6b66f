package ecs

// UpdateFrame is passed to every system during a single scheduler pass.
type UpdateFrame struct {
	// DeltaTime is the time in seconds covered by this frame.
	DeltaTime float64
	// Elapsed is the total time in seconds including this frame.
	Elapsed  float64
	Commands *Commands
	Storage  *Storage
}

func newUpdateFrame(dt, elapsed float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
