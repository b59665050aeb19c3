// Package input turns key presses and idle ticks into selection commands.
package input

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"webcam-fx/internal/catalog"
	"webcam-fx/internal/selection"
)

// DefaultNumericTimeout is how long a typed number waits before it is
// confirmed without Enter.
const DefaultNumericTimeout = time.Second

// Event is either a key press or an idle tick with no key.
type Event struct {
	Key     Key
	Timeout bool
}

func Press(k Key) Event { return Event{Key: k} }

func Idle() Event { return Event{Timeout: true} }

// Machine is the keyboard state machine. The only state it carries between
// events lives in selection.State (the numeric buffer and its timestamp).
type Machine struct {
	catalog     *catalog.Catalog
	idleTimeout time.Duration
	maxDigits   int
	logger      logrus.FieldLogger
}

func NewMachine(c *catalog.Catalog, logger logrus.FieldLogger) *Machine {
	return &Machine{
		catalog:     c,
		idleTimeout: DefaultNumericTimeout,
		maxDigits:   len(strconv.Itoa(c.MaxDisplayNumber())) + 1,
		logger:      logger,
	}
}

// Handle consumes one event. It returns the state with any numeric-entry
// changes applied and the command the caller should apply next.
func (m *Machine) Handle(st selection.State, ev Event, now time.Time) (selection.State, selection.Command) {
	if ev.Timeout {
		if st.NumericBuffer != "" && now.Sub(st.LastNumericInput) > m.idleTimeout {
			return m.confirm(st)
		}
		return st, selection.Command{}
	}

	k := ev.Key
	switch {
	case k.Kind == KeyRune && (k.Rune == 'q' || k.Rune == 'Q'):
		st.NumericBuffer = ""
		return st, selection.Command{Kind: selection.Quit}

	case k.Kind == KeyRune && (k.Rune == 'h' || k.Rune == 'H'):
		st.NumericBuffer = ""
		return st, selection.Command{Kind: selection.ToggleUIVisibility}

	case k.Kind == KeyRune && k.Rune == ' ':
		st.NumericBuffer = ""
		return st, selection.Command{Kind: selection.ToggleAutoAdvance}

	case k.Kind == KeyEnter:
		if st.NumericBuffer == "" {
			return st, selection.Command{}
		}
		return m.confirm(st)

	case k.Kind == KeyLeft:
		return st, selection.Step(-1)

	case k.Kind == KeyRight:
		return st, selection.Step(+1)

	case k.Kind == KeyRune && k.Rune >= '0' && k.Rune <= '9':
		// one digit past the largest number is enough to report it out of range
		if len(st.NumericBuffer) >= m.maxDigits {
			return st, selection.Command{}
		}
		st.NumericBuffer += string(k.Rune)
		st.LastNumericInput = now
		m.preview(st.NumericBuffer)
		return st, selection.Command{}

	case k.Kind == KeyRune:
		if idx, ok := m.catalog.QuickKey(k.Rune); ok {
			return st, selection.Select(idx)
		}
	}

	return st, selection.Command{}
}

// confirm resolves the numeric buffer. The buffer is cleared whatever the
// outcome; an out-of-range number changes nothing else.
func (m *Machine) confirm(st selection.State) (selection.State, selection.Command) {
	typed := st.NumericBuffer
	st.NumericBuffer = ""

	idx, ok := m.catalog.ResolveDisplay(typed)
	if !ok {
		m.logger.WithFields(logrus.Fields{
			"number": typed,
			"max":    m.catalog.MaxDisplayNumber(),
		}).Warn("Filter number out of range")
		return st, selection.Command{}
	}
	return st, selection.Select(idx)
}

func (m *Machine) preview(typed string) {
	idx, ok := m.catalog.ResolveDisplay(typed)
	if !ok {
		m.logger.WithField("number", typed).Warn("Filter number out of range")
		return
	}
	n, _ := strconv.Atoi(typed)
	m.logger.WithFields(logrus.Fields{
		"number": n,
		"filter": m.catalog.At(idx).Name,
	}).Info("Entering filter number (press Enter or wait 1s)")
}
