// Package display shows frames and delivers key presses.
package display

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"

	"webcam-fx/internal/input"
)

// Display is a window that frames are pushed to.
type Display interface {
	// Show presents frame. The display does not keep a reference to it.
	Show(frame gocv.Mat) error
	// PollKey waits up to wait for a key press.
	PollKey(wait time.Duration) (input.Key, bool)
	SetTitle(title string)
	// Closed reports whether the user closed the window.
	Closed() bool
	Close() error
	// Run drives loop on the goroutine layout the backend needs and returns
	// once loop has returned.
	Run(loop func())
}

// Backend names accepted by New.
const (
	BackendHighGUI = "highgui"
	BackendFyne    = "fyne"
)

// New opens a window with the named backend.
func New(backend, title string, width, height int) (Display, error) {
	switch backend {
	case BackendHighGUI, "":
		return NewHighGUI(title, width, height), nil
	case BackendFyne:
		return NewFyne(title, width, height), nil
	default:
		return nil, fmt.Errorf("unknown display backend %q", backend)
	}
}
