package display

import (
	"image"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"gocv.io/x/gocv"

	"webcam-fx/internal/input"
)

// AppID identifies the Fyne application.
const AppID = "io.wesworld.webcam-fx"

// Fyne shows frames in a Fyne window. The Fyne event loop owns the main
// goroutine, so Run starts the viewer loop in the background.
type Fyne struct {
	app    fyne.App
	window fyne.Window
	image  *canvas.Image

	keys   chan input.Key
	closed chan struct{}
	once   sync.Once

	mu    sync.Mutex
	title string
}

func NewFyne(title string, width, height int) *Fyne {
	a := app.NewWithID(AppID)
	w := a.NewWindow(title)

	img := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleFastest

	f := &Fyne{
		app:    a,
		window: w,
		image:  img,
		keys:   make(chan input.Key, 16),
		closed: make(chan struct{}),
		title:  title,
	}

	w.SetContent(img)
	w.Resize(fyne.NewSize(float32(width), float32(height)))
	w.Canvas().SetOnTypedKey(f.typedKey)
	w.Canvas().SetOnTypedRune(func(r rune) { f.push(input.Rune(r)) })
	w.SetOnClosed(f.markClosed)
	return f
}

func (f *Fyne) typedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyLeft:
		f.push(input.Left)
	case fyne.KeyRight:
		f.push(input.Right)
	case fyne.KeyReturn, fyne.KeyEnter:
		f.push(input.Enter)
	}
}

// push drops the key when the loop is not keeping up.
func (f *Fyne) push(k input.Key) {
	select {
	case f.keys <- k:
	default:
	}
}

func (f *Fyne) markClosed() {
	f.once.Do(func() { close(f.closed) })
}

func (f *Fyne) Show(frame gocv.Mat) error {
	if f.Closed() {
		return nil
	}
	img, err := frame.ToImage()
	if err != nil {
		return err
	}
	fyne.Do(func() {
		f.image.Image = img
		f.image.Refresh()
	})
	return nil
}

func (f *Fyne) PollKey(wait time.Duration) (input.Key, bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case k := <-f.keys:
		return k, true
	case <-f.closed:
		return input.Key{}, false
	case <-timer.C:
		return input.Key{}, false
	}
}

func (f *Fyne) SetTitle(title string) {
	f.mu.Lock()
	changed := title != f.title
	f.title = title
	f.mu.Unlock()

	if changed && !f.Closed() {
		fyne.Do(func() { f.window.SetTitle(title) })
	}
}

func (f *Fyne) Closed() bool {
	select {
	case <-f.closed:
		return true
	default:
		return false
	}
}

// Close quits the Fyne application. It is safe to call more than once.
func (f *Fyne) Close() error {
	if !f.Closed() {
		f.markClosed()
		fyne.Do(f.app.Quit)
	}
	return nil
}

func (f *Fyne) Run(loop func()) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer f.Close()
		loop()
	}()

	f.window.ShowAndRun()
	f.markClosed()
	<-done
}
