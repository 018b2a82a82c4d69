package scene

import (
	"fmt"

	"infinicity/internal/city"
)

// Session tracks what happened since the city was last initialized.
type Session struct {
	Frames       int
	Resets       int
	RowsForward  int
	RowsBackward int
	Distance     float64 // total scroll travelled, either direction
	Boundary     int
}

// NewSession returns a session subscribed to bus.
func NewSession(bus *EventBus) *Session {
	s := &Session{}
	bus.Subscribe(EventGridReset, func(Event) {
		s.Resets++
		s.RowsForward = 0
		s.RowsBackward = 0
		s.Distance = 0
		s.Boundary = 0
	})
	bus.Subscribe(EventScrolled, func(e Event) {
		if e.Delta < 0 {
			s.Distance -= e.Delta
		} else {
			s.Distance += e.Delta
		}
	})
	bus.Subscribe(EventRowRecycled, func(e Event) {
		switch e.Transition {
		case city.TransitionForward:
			s.RowsForward++
		case city.TransitionBackward:
			s.RowsBackward++
		}
		s.Boundary = e.Boundary
	})
	return s
}

// Tick counts a rendered frame.
func (s *Session) Tick() { s.Frames++ }

// Title returns a one-line status for the window title bar.
func (s *Session) Title(base string, st city.Stats) string {
	return fmt.Sprintf("%s | block %d | rows +%d/-%d | %d buildings, %d/%d windows lit",
		base, -s.Boundary, s.RowsForward, s.RowsBackward, st.Cells, st.LitWindows, st.Windows)
}
