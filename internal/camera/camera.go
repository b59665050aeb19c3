// Package camera opens a working capture device, trying a list of indices.
package camera

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// ErrDeviceUnavailable is returned when no index in the probe list yields a
// readable frame.
var ErrDeviceUnavailable = errors.New("could not access camera")

// Device is an open capture source.
type Device interface {
	Read(frame *gocv.Mat) bool
	Close() error
}

// Opener opens the device at index with the requested format.
type Opener func(index int, format Format) (Device, error)

// Format is the requested capture size and rate.
type Format struct {
	Width  int
	Height int
	FPS    int
}

// Prober finds a working camera.
type Prober struct {
	Open   Opener
	Warmup time.Duration
	Sleep  func(time.Duration)
	Logger logrus.FieldLogger
}

func NewProber(logger logrus.FieldLogger) *Prober {
	return &Prober{
		Open:   OpenVideoCapture,
		Warmup: 500 * time.Millisecond,
		Sleep:  time.Sleep,
		Logger: logger,
	}
}

// Candidates is the probe order: the saved index first, then 0, 1 and 2,
// without repeats.
func Candidates(saved *int) []int {
	order := make([]int, 0, 4)
	seen := make(map[int]bool)
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			order = append(order, i)
		}
	}
	if saved != nil {
		add(*saved)
	}
	for _, i := range []int{0, 1, 2} {
		add(i)
	}
	return order
}

// Probe returns the first device that opens and produces a valid test frame,
// together with its index.
func (p *Prober) Probe(saved *int, format Format) (Device, int, error) {
	for _, idx := range Candidates(saved) {
		isSaved := saved != nil && idx == *saved
		log := p.Logger.WithFields(logrus.Fields{"index": idx, "saved": isSaved})
		log.Info("Trying camera")

		dev, err := p.Open(idx, format)
		if err != nil {
			log.WithError(err).Warn("Could not open camera")
			continue
		}

		p.Sleep(p.Warmup)

		if err := testRead(dev); err != nil {
			dev.Close()
			log.WithError(err).Warn("Camera opened but could not read frames")
			continue
		}

		log.Info("Camera initialized")
		return dev, idx, nil
	}
	return nil, 0, ErrDeviceUnavailable
}

func testRead(dev Device) error {
	frame := gocv.NewMat()
	defer frame.Close()
	if !dev.Read(&frame) {
		return errors.New("read failed")
	}
	return ValidateFrame(frame)
}

// ValidateFrame checks that m looks like a usable video frame.
func ValidateFrame(m gocv.Mat) error {
	if m.Empty() {
		return errors.New("frame is empty")
	}
	if m.Cols() <= 0 || m.Rows() <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", m.Cols(), m.Rows())
	}
	if ch := m.Channels(); ch != 3 {
		return fmt.Errorf("unsupported channel count: %d", ch)
	}

	const maxDimension = 16384
	if m.Cols() > maxDimension || m.Rows() > maxDimension {
		return fmt.Errorf("frame too large: %dx%d (max: %d)", m.Cols(), m.Rows(), maxDimension)
	}
	return nil
}

// OpenVideoCapture opens an OpenCV capture device.
func OpenVideoCapture(index int, format Format) (Device, error) {
	vc, err := gocv.OpenVideoCapture(index)
	if err != nil {
		return nil, err
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("device %d did not open", index)
	}
	vc.Set(gocv.VideoCaptureFrameWidth, float64(format.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(format.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(format.FPS))
	return vc, nil
}
