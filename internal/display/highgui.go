package display

import (
	"time"

	"gocv.io/x/gocv"

	"webcam-fx/internal/input"
)

// HighGUI is an OpenCV window. It must be used from the goroutine that
// created it.
type HighGUI struct {
	window *gocv.Window
	title  string
	shown  bool
}

func NewHighGUI(title string, width, height int) *HighGUI {
	w := gocv.NewWindow(title)
	w.ResizeWindow(width, height)
	return &HighGUI{window: w, title: title}
}

func (h *HighGUI) Show(frame gocv.Mat) error {
	h.window.IMShow(frame)
	h.shown = true
	return nil
}

// PollKey blocks in waitKey for at least one millisecond, which also pumps
// the window's event queue.
func (h *HighGUI) PollKey(wait time.Duration) (input.Key, bool) {
	ms := max(1, int(wait/time.Millisecond))
	return input.DecodeHighGUI(h.window.WaitKey(ms))
}

func (h *HighGUI) SetTitle(title string) {
	if title == h.title {
		return
	}
	h.title = title
	h.window.SetWindowTitle(title)
}

// Closed is only meaningful after the first frame: the window is not
// visible before that.
func (h *HighGUI) Closed() bool {
	if !h.shown {
		return false
	}
	return h.window.GetWindowProperty(gocv.WindowPropertyVisible) < 1
}

func (h *HighGUI) Close() error {
	return h.window.Close()
}

func (h *HighGUI) Run(loop func()) { loop() }
