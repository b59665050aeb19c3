package face

import (
	"image"
	"os"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"gocv.io/x/gocv"
)

func TestLargest(t *testing.T) {
	_, ok := Largest(nil)
	assert.False(t, ok)

	faces := []image.Rectangle{
		image.Rect(0, 0, 10, 10),
		image.Rect(50, 50, 90, 100),
		image.Rect(5, 5, 40, 40),
	}
	got, ok := Largest(faces)
	assert.True(t, ok)
	assert.Equal(t, faces[1], got)
}

func TestOpenWithoutCascadeFallsBack(t *testing.T) {
	logger, hook := test.NewNullLogger()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	d := Open("", logger)
	assert.IsType(t, None{}, d)
	assert.NotNil(t, hook.LastEntry())

	frame := gocv.NewMatWithSize(10, 10, gocv.MatTypeCV8UC3)
	defer frame.Close()
	_, ok := d.DetectPrimary(frame)
	assert.False(t, ok)
	assert.Empty(t, d.DetectAll(frame))
	assert.NoError(t, d.Close())
}

func TestNewCascadeMissingFile(t *testing.T) {
	_, err := NewCascade("/nonexistent/cascade.xml")
	assert.Error(t, err)
}
