// Package face finds faces in frames with an OpenCV Haar cascade.
package face

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// DefaultCascade is the file name looked up when no cascade path is configured.
const DefaultCascade = "haarcascade_frontalface_default.xml"

// Detector finds faces in a BGR frame.
type Detector interface {
	// DetectPrimary returns the largest face, if any.
	DetectPrimary(frame gocv.Mat) (image.Rectangle, bool)

	// DetectAll returns every face found. Returns an empty slice if none.
	DetectAll(frame gocv.Mat) []image.Rectangle

	// Close releases any resources held by the detector.
	Close() error
}

// Cascade is a Detector backed by gocv.CascadeClassifier.
type Cascade struct {
	classifier gocv.CascadeClassifier
	minSize    image.Point
}

// NewCascade loads the classifier at path.
func NewCascade(path string) (*Cascade, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(path) {
		classifier.Close()
		return nil, fmt.Errorf("error reading cascade file: %s", path)
	}
	return &Cascade{classifier: classifier, minSize: image.Pt(60, 60)}, nil
}

func (c *Cascade) DetectAll(frame gocv.Mat) []image.Rectangle {
	if frame.Empty() {
		return nil
	}
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
	gocv.EqualizeHist(gray, &gray)

	return c.classifier.DetectMultiScaleWithParams(gray, 1.1, 5, 0, c.minSize, image.Point{})
}

func (c *Cascade) DetectPrimary(frame gocv.Mat) (image.Rectangle, bool) {
	return Largest(c.DetectAll(frame))
}

func (c *Cascade) Close() error {
	return c.classifier.Close()
}

// Largest returns the face with the biggest area.
func Largest(faces []image.Rectangle) (image.Rectangle, bool) {
	if len(faces) == 0 {
		return image.Rectangle{}, false
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.Dx()*f.Dy() > best.Dx()*best.Dy() {
			best = f
		}
	}
	return best, true
}

// None never finds a face. It stands in when no cascade could be loaded.
type None struct{}

func (None) DetectPrimary(gocv.Mat) (image.Rectangle, bool) { return image.Rectangle{}, false }
func (None) DetectAll(gocv.Mat) []image.Rectangle           { return nil }
func (None) Close() error                                   { return nil }

// Open loads the cascade at path, or searches the working directory and data/
// for DefaultCascade when path is empty. Failure is not fatal: face filters
// then leave frames untouched.
func Open(path string, logger logrus.FieldLogger) Detector {
	candidates := []string{path}
	if path == "" {
		candidates = []string{DefaultCascade, filepath.Join("data", DefaultCascade)}
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		c, err := NewCascade(p)
		if err != nil {
			logger.WithError(err).Warn("Could not load face cascade")
			continue
		}
		logger.WithField("cascade", p).Info("Face detection ready")
		return c
	}

	logger.WithField("searched", candidates).Warn("No face cascade found, face filters will show the plain frame")
	return None{}
}
