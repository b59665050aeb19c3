package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"webcam-fx/internal/catalog"
	"webcam-fx/internal/selection"
)

func TestListWindow(t *testing.T) {
	tests := []struct {
		name                  string
		current, total, lines int
		wantStart, wantEnd    int
	}{
		{"fits entirely", 3, 5, 10, 0, 5},
		{"exact fit", 4, 5, 5, 0, 5},
		{"no room", 3, 50, 0, 0, 0},
		{"negative room", 3, 50, -4, 0, 0},
		{"empty list", 0, 0, 10, 0, 0},
		{"at head", 0, 100, 10, 0, 9},
		{"at tail", 99, 100, 10, 91, 100},
		{"middle", 50, 100, 10, 46, 54},
		{"single row", 50, 100, 1, 0, 0},
		{"three rows", 50, 100, 3, 50, 51},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ListWindow(tt.current, tt.total, tt.lines)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestListWindowAlwaysFitsAndShowsCurrent(t *testing.T) {
	const total = 105
	for lines := 3; lines < 30; lines++ {
		for current := 0; current < total; current++ {
			start, end := ListWindow(current, total, lines)

			used := end - start
			if start > 0 {
				used++
			}
			if end < total {
				used++
			}
			require.LessOrEqual(t, used, lines, "current=%d lines=%d", current, lines)
			require.True(t, current >= start && current < end, "current=%d lines=%d window=[%d,%d)", current, lines, start, end)
		}
	}
}

func TestListMarkers(t *testing.T) {
	tests := []struct {
		name              string
		start, end, total int
		above, below      bool
	}{
		{"whole list", 0, 5, 5, false, false},
		{"head", 0, 9, 100, false, true},
		{"tail", 91, 100, 100, true, false},
		{"middle", 46, 54, 100, true, true},
		{"no room", 0, 0, 100, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			above, below := listMarkers(tt.start, tt.end, tt.total)
			assert.Equal(t, tt.above, above)
			assert.Equal(t, tt.below, below)
		})
	}

	// a single row has no room for an entry, so nothing is drawn at all
	start, end := ListWindow(50, 100, 1)
	above, below := listMarkers(start, end, 100)
	assert.False(t, above)
	assert.False(t, below)
}

func TestWindowTitle(t *testing.T) {
	st := selection.NewState(0)
	assert.NotContains(t, WindowTitle(st), "[AUTO-ADVANCE ON]")

	st.AutoAdvance = true
	assert.Contains(t, WindowTitle(st), "[AUTO-ADVANCE ON]")
	assert.Contains(t, WindowTitle(st), Title)
}

func TestPendingLine(t *testing.T) {
	r := New(catalog.Default(), 300*time.Millisecond)

	idx, ok := r.catalog.ResolveDisplay("0")
	require.True(t, ok)
	assert.Equal(t, "Pending: 0 -> "+r.catalog.At(idx).Name, r.pendingLine("0"))
	assert.Equal(t, "Pending: 999 (out of range)", r.pendingLine("999"))
}

func testFrame(w, h int) gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 120, 40, 0), h, w, gocv.MatTypeCV8UC3)
}

func TestRenderLeavesInputUntouched(t *testing.T) {
	frame := testFrame(640, 360)
	defer frame.Close()
	before := frame.ToBytes()

	st := selection.NewState(12)
	st.AutoAdvance = true
	st.NumericBuffer = "4"

	out := New(catalog.Default(), 300*time.Millisecond).Render(frame, st)
	defer out.Close()

	assert.Equal(t, before, frame.ToBytes())
	assert.Equal(t, frame.Rows(), out.Rows())
	assert.Equal(t, frame.Cols(), out.Cols())
	assert.Equal(t, frame.Type(), out.Type())
	assert.NotEqual(t, before, out.ToBytes())
}

func TestRenderIsDeterministic(t *testing.T) {
	r := New(catalog.Default(), 300*time.Millisecond)
	frame := testFrame(1280, 720)
	defer frame.Close()
	st := selection.NewState(60)

	a := r.Render(frame, st)
	defer a.Close()
	b := r.Render(frame, st)
	defer b.Close()

	assert.Equal(t, a.ToBytes(), b.ToBytes())
}

func TestRenderTinyFrame(t *testing.T) {
	r := New(catalog.Default(), time.Second)
	for _, size := range [][2]int{{32, 24}, {8, 8}, {1, 1}} {
		frame := testFrame(size[0], size[1])
		out := r.Render(frame, selection.NewState(0))
		assert.Equal(t, size[1], out.Rows())
		assert.Equal(t, size[0], out.Cols())
		out.Close()
		frame.Close()
	}
}

func TestRenderEmptyFrame(t *testing.T) {
	frame := gocv.NewMat()
	defer frame.Close()

	out := New(catalog.Default(), time.Second).Render(frame, selection.NewState(0))
	defer out.Close()
	assert.True(t, out.Empty())
}
