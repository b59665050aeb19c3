package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestApplyNavigationWraps(t *testing.T) {
	const n = 10

	s := State{Index: n - 1}
	s = s.Apply(Step(+1), t0, n)
	assert.Equal(t, 0, s.Index)

	s = s.Apply(Step(-1), t0, n)
	assert.Equal(t, n-1, s.Index)
}

func TestApplySelectionStopsAutoAdvance(t *testing.T) {
	s := State{Index: 3, AutoAdvance: true, NumericBuffer: "4"}

	got := s.Apply(Select(7), t0, 10)
	assert.Equal(t, 7, got.Index)
	assert.False(t, got.AutoAdvance)
	assert.Empty(t, got.NumericBuffer)

	got = s.Apply(Step(1), t0, 10)
	assert.Equal(t, 4, got.Index)
	assert.False(t, got.AutoAdvance)
	assert.Empty(t, got.NumericBuffer)
}

func TestApplySelectOutOfRangeIsIgnored(t *testing.T) {
	s := State{Index: 3, AutoAdvance: true}
	assert.Equal(t, s, s.Apply(Select(10), t0, 10))
	assert.Equal(t, s, s.Apply(Select(-1), t0, 10))
}

func TestApplyToggles(t *testing.T) {
	s := NewState(0)
	assert.True(t, s.UIVisible)

	s = s.Apply(Command{Kind: ToggleUIVisibility}, t0, 5)
	assert.False(t, s.UIVisible)

	later := t0.Add(3 * time.Second)
	s = s.Apply(Command{Kind: ToggleAutoAdvance}, later, 5)
	assert.True(t, s.AutoAdvance)
	assert.Equal(t, later, s.LastAdvance)

	before := s
	assert.Equal(t, before, s.Apply(Command{Kind: Quit}, later, 5))
	assert.Equal(t, before, s.Apply(Command{}, later, 5))
}

func TestAdvanceTakesOneStepPerCheck(t *testing.T) {
	const interval = 300 * time.Millisecond
	s := State{Index: 0, AutoAdvance: true, LastAdvance: t0}

	s, moved := s.Advance(t0.Add(299*time.Millisecond), interval, 5)
	assert.False(t, moved)
	assert.Equal(t, 0, s.Index)

	now := t0.Add(1200 * time.Millisecond)
	s, moved = s.Advance(now, interval, 5)
	assert.True(t, moved)
	assert.Equal(t, 1, s.Index, "no catch-up over missed intervals")
	assert.Equal(t, now, s.LastAdvance)

	s, moved = s.Advance(now, interval, 5)
	assert.False(t, moved)
	assert.Equal(t, 1, s.Index)

	s, moved = s.Advance(now.Add(interval), interval, 5)
	assert.True(t, moved)
	assert.Equal(t, 2, s.Index)
}

func TestAdvanceWrapsAndRespectsDisabled(t *testing.T) {
	s := State{Index: 4, AutoAdvance: true, LastAdvance: t0}
	s, _ = s.Advance(t0.Add(time.Second), time.Millisecond, 5)
	assert.Equal(t, 0, s.Index)

	off := State{Index: 2, LastAdvance: t0}
	got, moved := off.Advance(t0.Add(time.Hour), time.Millisecond, 5)
	assert.False(t, moved)
	assert.Equal(t, off, got)
}
