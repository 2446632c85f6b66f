package game

import "github.com/plus3/dodge/ecs"

// InputSource reports which arrow keys are held this frame.
type InputSource interface {
	Poll() InputState
}

// InputFunc adapts a function to InputSource.
type InputFunc func() InputState

func (f InputFunc) Poll() InputState {
	return f()
}

// StaticInput always reports the same keys.
type StaticInput InputState

func (s StaticInput) Poll() InputState {
	return InputState(s)
}

// ScriptedInput replays one InputState per frame and then holds the last one.
type ScriptedInput struct {
	Frames []InputState
	next   int
}

func (s *ScriptedInput) Poll() InputState {
	if len(s.Frames) == 0 {
		return InputState{}
	}
	state := s.Frames[min(s.next, len(s.Frames)-1)]
	s.next++
	return state
}

// InputSystem copies the source's key state into the InputState singleton.
type InputSystem struct {
	Source InputSource
	State  ecs.Singleton[InputState]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Source == nil {
		*s.State.Get() = InputState{}
		return
	}
	*s.State.Get() = s.Source.Poll()
}
