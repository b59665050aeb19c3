package display

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcam-fx/internal/input"
)

func TestNewRejectsUnknownBackend(t *testing.T) {
	d, err := New("sdl", "title", 640, 480)
	require.Error(t, err)
	assert.Nil(t, d)
	assert.Contains(t, err.Error(), "sdl")
}

// headless builds the key plumbing of a Fyne display without a window.
func headless(buffer int) *Fyne {
	return &Fyne{
		keys:   make(chan input.Key, buffer),
		closed: make(chan struct{}),
	}
}

func TestFyneKeyTranslation(t *testing.T) {
	f := headless(8)

	f.typedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	f.typedKey(&fyne.KeyEvent{Name: fyne.KeyRight})
	f.typedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	f.typedKey(&fyne.KeyEvent{Name: fyne.KeyEnter})
	f.typedKey(&fyne.KeyEvent{Name: fyne.KeyF1})
	f.push(input.Rune('7'))

	want := []input.Key{input.Left, input.Right, input.Enter, input.Enter, input.Rune('7')}
	for _, w := range want {
		k, ok := f.PollKey(time.Second)
		require.True(t, ok)
		assert.Equal(t, w, k)
	}

	_, ok := f.PollKey(time.Millisecond)
	assert.False(t, ok)
}

func TestFynePushDropsWhenFull(t *testing.T) {
	f := headless(1)
	f.push(input.Rune('a'))
	f.push(input.Rune('b'))

	k, ok := f.PollKey(time.Second)
	require.True(t, ok)
	assert.Equal(t, input.Rune('a'), k)

	_, ok = f.PollKey(time.Millisecond)
	assert.False(t, ok)
}

func TestFyneClosedUnblocksPoll(t *testing.T) {
	f := headless(1)
	assert.False(t, f.Closed())

	f.markClosed()
	f.markClosed()
	assert.True(t, f.Closed())

	start := time.Now()
	_, ok := f.PollKey(time.Minute)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 10*time.Second)
}
