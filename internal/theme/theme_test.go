package theme

import (
	"sync"
	"testing"
)

func TestState_DefaultsToLight(t *testing.T) {
	s := NewState()
	if got := s.Current(); got != Light {
		t.Fatalf("Current() = %q, want %q", got, Light)
	}
}

func TestState_Toggle(t *testing.T) {
	s := NewState()

	if got := s.Toggle(); got != Dark {
		t.Errorf("first Toggle() = %q, want %q", got, Dark)
	}
	if got := s.Current(); got != Dark {
		t.Errorf("Current() after toggle = %q, want %q", got, Dark)
	}
	if got := s.Toggle(); got != Light {
		t.Errorf("second Toggle() = %q, want %q", got, Light)
	}
}

// Two consecutive toggles must return the state to its original value.
func TestState_ToggleIsInvolution(t *testing.T) {
	s := NewState()
	before := s.Current()
	s.Toggle()
	s.Toggle()
	if got := s.Current(); got != before {
		t.Fatalf("mode after two toggles = %q, want %q", got, before)
	}
}

func TestState_Toggle_Concurrent(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup
	const toggles = 100 // even count, must land back on Light

	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle()
		}()
	}
	wg.Wait()

	if got := s.Current(); got != Light {
		t.Fatalf("mode after %d toggles = %q, want %q", toggles, got, Light)
	}
}
