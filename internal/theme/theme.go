package theme

import "sync"

// Mode is the display mode the presentation layer should render with.
// It is toggled explicitly by the user, never inferred from the OS.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// State tracks the session-wide display mode. Safe for concurrent use.
type State struct {
	mu   sync.Mutex
	mode Mode
}

// NewState returns state starting in Light mode.
func NewState() *State {
	return &State{mode: Light}
}

// Current returns the active mode.
func (s *State) Current() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Toggle flips between Light and Dark and returns the new mode.
func (s *State) Toggle() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Light {
		s.mode = Dark
	} else {
		s.mode = Light
	}
	return s.mode
}
