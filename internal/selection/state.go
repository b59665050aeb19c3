// Package selection holds the viewer's filter selection state and the
// commands that change it.
package selection

import "time"

// State is owned by the viewer loop. Update functions return a new value
// instead of mutating shared state.
type State struct {
	Index            int
	AutoAdvance      bool
	LastAdvance      time.Time
	NumericBuffer    string
	LastNumericInput time.Time
	UIVisible        bool
}

// NewState starts at the given catalog position with the overlay shown.
func NewState(start int) State {
	return State{Index: start, UIVisible: true}
}

// Kind identifies a command.
type Kind int

const (
	NoOp Kind = iota
	SelectAbsolute
	SelectRelative
	ToggleAutoAdvance
	ToggleUIVisibility
	Quit
)

func (k Kind) String() string {
	switch k {
	case NoOp:
		return "noop"
	case SelectAbsolute:
		return "select"
	case SelectRelative:
		return "step"
	case ToggleAutoAdvance:
		return "toggle_auto_advance"
	case ToggleUIVisibility:
		return "toggle_ui"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is produced by the input state machine and applied with Apply.
type Command struct {
	Kind  Kind
	Index int // SelectAbsolute
	Delta int // SelectRelative
}

func Select(index int) Command { return Command{Kind: SelectAbsolute, Index: index} }

func Step(delta int) Command { return Command{Kind: SelectRelative, Delta: delta} }

// Apply returns the state after cmd. n is the catalog length.
// Explicit selections stop auto-advance and drop any pending numeric entry.
func (s State) Apply(cmd Command, now time.Time, n int) State {
	switch cmd.Kind {
	case SelectAbsolute:
		if cmd.Index < 0 || cmd.Index >= n {
			return s
		}
		s.Index = cmd.Index
		s.AutoAdvance = false
		s.NumericBuffer = ""
	case SelectRelative:
		s.Index = wrap(s.Index+cmd.Delta, n)
		s.AutoAdvance = false
		s.NumericBuffer = ""
	case ToggleAutoAdvance:
		s.AutoAdvance = !s.AutoAdvance
		s.LastAdvance = now
	case ToggleUIVisibility:
		s.UIVisible = !s.UIVisible
	}
	return s
}

// Advance moves to the next position when auto-advance is on and interval has
// elapsed since the last advance. At most one step is taken per call, however
// long the gap was.
func (s State) Advance(now time.Time, interval time.Duration, n int) (State, bool) {
	if !s.AutoAdvance || now.Sub(s.LastAdvance) < interval {
		return s, false
	}
	s.Index = wrap(s.Index+1, n)
	s.LastAdvance = now
	return s, true
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
