package input

import (
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcam-fx/internal/catalog"
	"webcam-fx/internal/selection"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newMachine(t *testing.T) (*Machine, *catalog.Catalog, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	c := catalog.Default()
	return NewMachine(c, logger), c, hook
}

// feed runs keys through the machine and applies every command, the way the
// viewer loop does.
func feed(m *Machine, c *catalog.Catalog, st selection.State, now time.Time, keys ...Key) (selection.State, selection.Command) {
	var cmd selection.Command
	for _, k := range keys {
		st, cmd = m.Handle(st, Press(k), now)
		st = st.Apply(cmd, now, c.Len())
	}
	return st, cmd
}

func TestHandleSimpleKeys(t *testing.T) {
	m, _, _ := newMachine(t)

	tests := []struct {
		name string
		key  Key
		want selection.Kind
	}{
		{"quit lower", Rune('q'), selection.Quit},
		{"quit upper", Rune('Q'), selection.Quit},
		{"ui lower", Rune('h'), selection.ToggleUIVisibility},
		{"ui upper", Rune('H'), selection.ToggleUIVisibility},
		{"space", Rune(' '), selection.ToggleAutoAdvance},
		{"left", Left, selection.SelectRelative},
		{"right", Right, selection.SelectRelative},
		{"quick key", Rune('s'), selection.SelectAbsolute},
		{"enter with empty buffer", Enter, selection.NoOp},
		{"unknown", Rune('z'), selection.NoOp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := selection.NewState(5)
			got, cmd := m.Handle(st, Press(tt.key), t0)
			assert.Equal(t, tt.want, cmd.Kind)
			if tt.want == selection.NoOp {
				assert.Equal(t, st, got, "no-op keys leave state alone")
			}
		})
	}
}

func TestNavigationDeltas(t *testing.T) {
	m, _, _ := newMachine(t)
	_, cmd := m.Handle(selection.State{}, Press(Left), t0)
	assert.Equal(t, -1, cmd.Delta)
	_, cmd = m.Handle(selection.State{}, Press(Right), t0)
	assert.Equal(t, 1, cmd.Delta)
}

func TestNavigationClearsBufferAndAutoAdvance(t *testing.T) {
	m, c, _ := newMachine(t)
	st := selection.State{Index: 4, AutoAdvance: true, NumericBuffer: "1"}

	st, _ = feed(m, c, st, t0, Right)
	assert.Equal(t, 5, st.Index)
	assert.False(t, st.AutoAdvance)
	assert.Empty(t, st.NumericBuffer)
}

func TestQuickKeySelectsBoundPosition(t *testing.T) {
	m, c, _ := newMachine(t)
	st := selection.State{Index: 40, AutoAdvance: true}

	st, _ = feed(m, c, st, t0, Rune('s'))
	assert.Equal(t, 0, st.Index)
	assert.False(t, st.AutoAdvance)
}

func TestNumericEntryWithEnter(t *testing.T) {
	m, c, _ := newMachine(t)
	st := selection.NewState(0)

	st, cmd := feed(m, c, st, t0, Rune('1'), Rune('2'))
	assert.Equal(t, selection.NoOp, cmd.Kind)
	assert.Equal(t, "12", st.NumericBuffer)
	assert.Equal(t, 0, st.Index, "digits only preview")

	st, cmd = feed(m, c, st, t0, Enter)
	assert.Equal(t, selection.SelectAbsolute, cmd.Kind)
	assert.Equal(t, 13, st.Index)
	assert.Empty(t, st.NumericBuffer)
}

func TestNumericZeroSelectsPassthrough(t *testing.T) {
	m, c, _ := newMachine(t)
	st, _ := feed(m, c, selection.NewState(0), t0, Rune('0'), Enter)
	assert.Equal(t, 1, st.Index)
	assert.Equal(t, catalog.Passthrough, c.At(st.Index).Category)
}

func TestNumericOutOfRangeKeepsSelection(t *testing.T) {
	m, c, hook := newMachine(t)
	st := selection.State{Index: 7, AutoAdvance: true, UIVisible: true}

	st, _ = feed(m, c, st, t0, Rune('9'), Rune('9'), Rune('9'), Enter)
	assert.Equal(t, 7, st.Index)
	assert.True(t, st.AutoAdvance)
	assert.True(t, st.UIVisible)
	assert.Empty(t, st.NumericBuffer)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestNumericAutoConfirmAfterIdle(t *testing.T) {
	m, c, _ := newMachine(t)
	st, _ := feed(m, c, selection.NewState(0), t0, Rune('4'))

	st, cmd := m.Handle(st, Idle(), t0.Add(DefaultNumericTimeout))
	assert.Equal(t, selection.NoOp, cmd.Kind, "exactly the timeout is not past it")
	assert.Equal(t, "4", st.NumericBuffer)

	now := t0.Add(DefaultNumericTimeout + time.Millisecond)
	st, cmd = m.Handle(st, Idle(), now)
	assert.Equal(t, selection.SelectAbsolute, cmd.Kind)
	assert.Equal(t, 5, cmd.Index)
	assert.Empty(t, st.NumericBuffer)
}

func TestNumericAutoConfirmClearsInvalidBuffer(t *testing.T) {
	m, c, _ := newMachine(t)
	st, _ := feed(m, c, selection.State{Index: 3}, t0, Rune('9'), Rune('9'), Rune('9'))

	st, cmd := m.Handle(st, Idle(), t0.Add(2*time.Second))
	assert.Equal(t, selection.NoOp, cmd.Kind)
	assert.Empty(t, st.NumericBuffer)
	assert.Equal(t, 3, st.Index)
}

func TestIdleWithoutBufferIsNoOp(t *testing.T) {
	m, _, _ := newMachine(t)
	st := selection.State{Index: 2, AutoAdvance: true}
	got, cmd := m.Handle(st, Idle(), t0.Add(time.Hour))
	assert.Equal(t, selection.NoOp, cmd.Kind)
	assert.Equal(t, st, got)
}

func TestDigitStampsTimestamp(t *testing.T) {
	m, _, _ := newMachine(t)
	st, _ := m.Handle(selection.State{}, Press(Rune('3')), t0)
	assert.Equal(t, t0, st.LastNumericInput)

	later := t0.Add(500 * time.Millisecond)
	st, _ = m.Handle(st, Press(Rune('1')), later)
	assert.Equal(t, later, st.LastNumericInput)
	assert.Equal(t, "31", st.NumericBuffer)
}

func TestDecodeHighGUI(t *testing.T) {
	tests := []struct {
		code int
		want Key
		ok   bool
	}{
		{-1, Key{}, false},
		{65361, Left, true},
		{2, Left, true},
		{83, Right, true},
		{65363, Right, true},
		{3, Right, true},
		{13, Enter, true},
		{10, Enter, true},
		{'q', Rune('q'), true},
		{'Q', Rune('Q'), true},
		{'h', Rune('h'), true},
		{'H', Rune('H'), true},
		{' ', Rune(' '), true},
		{0x100 | '5', Rune('5'), true},
	}

	for _, tt := range tests {
		got, ok := DecodeHighGUI(tt.code)
		assert.Equal(t, tt.ok, ok, "code %d", tt.code)
		assert.Equal(t, tt.want, got, "code %d", tt.code)
	}
}

func TestHighGUIUpperQQuits(t *testing.T) {
	m, _, _ := newMachine(t)

	k, ok := DecodeHighGUI('Q')
	require.True(t, ok)
	_, cmd := m.Handle(selection.NewState(5), Press(k), t0)
	assert.Equal(t, selection.Quit, cmd.Kind)

	k, ok = DecodeHighGUI(65361)
	require.True(t, ok)
	_, cmd = m.Handle(selection.NewState(5), Press(k), t0)
	assert.Equal(t, selection.Step(-1), cmd)
}

func TestNumericBufferIsBounded(t *testing.T) {
	m, c, _ := newMachine(t)
	limit := len(strconv.Itoa(c.MaxDisplayNumber())) + 1

	st := selection.NewState(5)
	keys := make([]Key, 0, 20)
	for i := 0; i < 20; i++ {
		keys = append(keys, Rune('9'))
	}
	st, _ = feed(m, c, st, t0, keys...)
	assert.Len(t, st.NumericBuffer, limit)

	st, cmd := m.Handle(st, Press(Enter), t0)
	assert.Equal(t, selection.NoOp, cmd.Kind)
	assert.Empty(t, st.NumericBuffer)
	assert.Equal(t, 5, st.Index)
}
