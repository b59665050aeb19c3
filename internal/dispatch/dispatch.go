// Package dispatch routes each frame through the operation bound to the
// selected catalog position.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"webcam-fx/internal/catalog"
	"webcam-fx/internal/face"
	"webcam-fx/internal/fx"
)

// binding is the operation resolved for one catalog position.
type binding struct {
	entry catalog.Entry
	op    fx.Op
	err   error
}

// Dispatcher applies filters. Every position is bound to its operation once,
// when the dispatcher is built.
type Dispatcher struct {
	bindings []binding
	detector face.Detector
	logger   logrus.FieldLogger
	reported map[int]string
}

func New(c *catalog.Catalog, reg *fx.Registry, detector face.Detector, logger logrus.FieldLogger) *Dispatcher {
	d := &Dispatcher{
		bindings: make([]binding, c.Len()),
		detector: detector,
		logger:   logger,
		reported: make(map[int]string),
	}
	for i, e := range c.Entries() {
		b := bind(e, reg)
		if b.err != nil {
			logger.WithFields(logrus.Fields{
				"position": i,
				"filter":   e.ID,
			}).WithError(b.err).Warn("Filter has no usable operation")
		}
		d.bindings[i] = b
	}
	return d
}

func bind(e catalog.Entry, reg *fx.Registry) binding {
	b := binding{entry: e}
	if e.Category == catalog.Passthrough {
		return b
	}

	op, ok := reg.Lookup(e.ID)
	if !ok {
		b.err = fmt.Errorf("unknown filter %q", e.ID)
		return b
	}

	var shapeOK bool
	switch e.Category {
	case catalog.FaceMaskMulti:
		shapeOK = op.Faces != nil
	case catalog.Animated:
		shapeOK = op.Animated != nil
	default:
		shapeOK = op.Region != nil
	}
	if !shapeOK {
		b.err = fmt.Errorf("filter %q has no %s operation", e.ID, e.Category)
		return b
	}

	b.op = op
	return b
}

// Apply returns the filtered frame for the filter at position. It never
// fails: when the operation errors, or the face it needs is missing, the
// result is a copy of the unmodified frame. The caller owns the result and
// frame is never modified.
func (d *Dispatcher) Apply(frame gocv.Mat, position int, tick int64) gocv.Mat {
	out, err := d.run(frame, position, tick)
	if err != nil {
		out.Close()
		d.report(position, err)
		return frame.Clone()
	}
	return out
}

func (d *Dispatcher) run(frame gocv.Mat, position int, tick int64) (gocv.Mat, error) {
	if position < 0 || position >= len(d.bindings) {
		return gocv.NewMat(), fmt.Errorf("position %d outside catalog", position)
	}
	b := d.bindings[position]
	if b.entry.Category == catalog.Passthrough {
		return frame.Clone(), nil
	}
	if b.err != nil {
		return gocv.NewMat(), b.err
	}

	switch b.entry.Category {
	case catalog.FaceTattoo, catalog.SingleFaceGeneric:
		region, ok := d.detector.DetectPrimary(frame)
		if !ok {
			return frame.Clone(), nil
		}
		return invoke(func() (gocv.Mat, error) { return b.op.Region(frame, region) })

	case catalog.FaceMaskMulti:
		faces := d.detector.DetectAll(frame)
		if len(faces) == 0 {
			return frame.Clone(), nil
		}
		return invoke(func() (gocv.Mat, error) { return b.op.Faces(frame, faces) })

	case catalog.Animated:
		return invoke(func() (gocv.Mat, error) { return b.op.Animated(frame, fx.FullFrame(frame), tick) })

	default:
		return invoke(func() (gocv.Mat, error) { return b.op.Region(frame, fx.FullFrame(frame)) })
	}
}

// invoke runs one operation, turning a panic or an empty result into an
// error. The returned Mat is always allocated.
func invoke(fn func() (gocv.Mat, error)) (out gocv.Mat, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = gocv.NewMat()
			err = fmt.Errorf("filter panicked: %v", r)
		}
	}()

	out, err = fn()
	if err == nil && out.Empty() {
		err = errors.New("filter returned an empty frame")
	}
	return out, err
}

// report logs a failure at warn level the first time it is seen for a
// position and at debug level while it repeats.
func (d *Dispatcher) report(position int, err error) {
	log := d.logger.WithField("position", position).WithError(err)
	if position >= 0 && position < len(d.bindings) {
		log = log.WithField("filter", d.bindings[position].entry.Name)
	}

	msg := err.Error()
	if d.reported[position] == msg {
		log.Debug("Error applying filter")
		return
	}
	d.reported[position] = msg
	log.Warn("Error applying filter")
}
