// Package viewer runs the capture, filter, overlay and input loop.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"webcam-fx/internal/camera"
	"webcam-fx/internal/catalog"
	"webcam-fx/internal/display"
	"webcam-fx/internal/input"
	"webcam-fx/internal/metrics"
	"webcam-fx/internal/overlay"
	"webcam-fx/internal/selection"
)

// ErrCaptureLost ends the loop when the camera keeps failing to deliver
// frames.
var ErrCaptureLost = errors.New("camera stopped delivering frames")

const (
	DefaultMaxReadFailures = 10
	DefaultReadBackoff     = 100 * time.Millisecond
	DefaultFPS             = 30
)

// Filter applies the filter at a catalog position. The result is owned by the
// caller.
type Filter interface {
	Apply(frame gocv.Mat, position int, tick int64) gocv.Mat
}

// Overlay draws the status panel. The result is owned by the caller.
type Overlay interface {
	Render(frame gocv.Mat, st selection.State) gocv.Mat
}

// Phase is the lifecycle state of a Loop.
type Phase int

const (
	Running Phase = iota
	Stopped
)

func (p Phase) String() string {
	if p == Running {
		return "running"
	}
	return "stopped"
}

// Options wires a Loop. Now and Sleep default to the wall clock.
type Options struct {
	Source  camera.Device
	Display display.Display
	Filter  Filter
	Overlay Overlay
	Input   *input.Machine
	Catalog *catalog.Catalog
	Metrics *metrics.Tracker
	Logger  logrus.FieldLogger

	Start           int
	AdvanceInterval time.Duration
	FPS             int
	MaxReadFailures int
	ReadBackoff     time.Duration

	Now   func() time.Time
	Sleep func(time.Duration)
}

// Loop owns the selection state for its whole run. Everything happens on the
// goroutine that calls Run.
type Loop struct {
	source  camera.Device
	display display.Display
	filter  Filter
	overlay Overlay
	input   *input.Machine
	catalog *catalog.Catalog
	metrics *metrics.Tracker
	logger  logrus.FieldLogger

	interval    time.Duration
	budget      time.Duration
	maxFailures int
	backoff     time.Duration
	now         func() time.Time
	sleep       func(time.Duration)

	state  selection.State
	phase  Phase
	frames int64
}

func New(opts Options) *Loop {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	l := &Loop{
		source:      opts.Source,
		display:     opts.Display,
		filter:      opts.Filter,
		overlay:     opts.Overlay,
		input:       opts.Input,
		catalog:     opts.Catalog,
		metrics:     opts.Metrics,
		logger:      opts.Logger,
		interval:    opts.AdvanceInterval,
		budget:      FrameBudget(fps),
		maxFailures: opts.MaxReadFailures,
		backoff:     opts.ReadBackoff,
		now:         opts.Now,
		sleep:       opts.Sleep,
		state:       selection.NewState(opts.Start),
	}
	if l.maxFailures <= 0 {
		l.maxFailures = DefaultMaxReadFailures
	}
	if l.backoff <= 0 {
		l.backoff = DefaultReadBackoff
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.sleep == nil {
		l.sleep = time.Sleep
	}
	if l.metrics == nil {
		l.metrics = metrics.NewTracker(l.budget, l.logger)
	}
	return l
}

// FrameBudget is the per-frame key wait, 1000/fps milliseconds and never
// below one millisecond.
func FrameBudget(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return max(time.Millisecond, time.Duration(1000/fps)*time.Millisecond)
}

func (l *Loop) State() selection.State { return l.state }

func (l *Loop) Phase() Phase { return l.phase }

// Frames is the number of frames read so far. It doubles as the animation
// tick and is never reset.
func (l *Loop) Frames() int64 { return l.frames }

// Run processes frames until the user quits, ctx is cancelled, the window is
// closed, or the camera is lost. Only the last case returns an error. The
// source and display are closed before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.release()

	l.phase = Running
	l.metrics.Start(l.now())
	defer func() { l.metrics.Summary(l.now()) }()

	frame := gocv.NewMat()
	defer frame.Close()

	l.logger.WithFields(logrus.Fields{
		"filter":   l.catalog.At(l.state.Index).Name,
		"budget":   l.budget,
		"interval": l.interval,
	}).Info("Viewer started")

	failures := 0
	for l.phase == Running {
		if ctx.Err() != nil {
			l.logger.Info("Viewer interrupted")
			l.phase = Stopped
			break
		}
		if l.display.Closed() {
			l.logger.Info("Window closed")
			l.phase = Stopped
			break
		}

		start := l.now()
		if !l.source.Read(&frame) || frame.Empty() {
			failures++
			l.metrics.ReadFailed()
			if failures >= l.maxFailures {
				l.phase = Stopped
				return fmt.Errorf("%w after %d consecutive failed reads", ErrCaptureLost, failures)
			}
			l.logger.WithField("failures", failures).Debug("Failed to read frame")
			l.sleep(l.backoff)
			continue
		}
		failures = 0
		l.frames++
		l.metrics.Observe(metrics.StageCapture, l.now().Sub(start))

		l.tick(frame, start)
	}
	return nil
}

// tick runs one frame read at start through the pipeline and then handles at
// most one key. A selection change is only seen from the next frame on. The
// frame's time is taken before the key poll, which waits out the budget.
func (l *Loop) tick(frame gocv.Mat, start time.Time) {
	n := l.catalog.Len()

	mirrored := gocv.NewMat()
	defer mirrored.Close()
	gocv.Flip(frame, &mirrored, 1)

	if st, ok := l.state.Advance(l.now(), l.interval, n); ok {
		l.state = st
		l.logger.WithField("filter", l.catalog.At(st.Index).Name).Debug("Auto-advanced")
	}

	t := l.now()
	filtered := l.filter.Apply(mirrored, l.state.Index, l.frames)
	defer filtered.Close()
	l.metrics.Observe(metrics.StageFilter, l.now().Sub(t))

	shown := filtered
	if l.state.UIVisible {
		t = l.now()
		drawn := l.overlay.Render(filtered, l.state)
		defer drawn.Close()
		l.metrics.Observe(metrics.StageOverlay, l.now().Sub(t))
		shown = drawn
	}

	t = l.now()
	l.display.SetTitle(overlay.WindowTitle(l.state))
	if err := l.display.Show(shown); err != nil {
		l.logger.WithError(err).Warn("Failed to present frame")
	}
	l.metrics.Observe(metrics.StageDisplay, l.now().Sub(t))
	l.metrics.Frame(l.now(), l.now().Sub(start))

	ev := input.Idle()
	if k, ok := l.display.PollKey(l.budget); ok {
		ev = input.Press(k)
	}
	l.handle(ev)
}

func (l *Loop) handle(ev input.Event) {
	now := l.now()
	st, cmd := l.input.Handle(l.state, ev, now)
	prev := st.Index
	l.state = st.Apply(cmd, now, l.catalog.Len())

	switch cmd.Kind {
	case selection.NoOp:
		return
	case selection.Quit:
		l.logger.Info("Quit requested")
		l.phase = Stopped
	case selection.ToggleAutoAdvance:
		l.logger.WithField("enabled", l.state.AutoAdvance).Info("Auto-advance toggled")
	case selection.ToggleUIVisibility:
		l.logger.WithField("visible", l.state.UIVisible).Debug("Overlay toggled")
	default:
		if l.state.Index != prev {
			l.logger.WithFields(logrus.Fields{
				"position": l.state.Index,
				"filter":   l.catalog.At(l.state.Index).Name,
			}).Info("Filter selected")
		}
	}
}

func (l *Loop) release() {
	if err := l.source.Close(); err != nil {
		l.logger.WithError(err).Warn("Failed to release camera")
	}
	if err := l.display.Close(); err != nil {
		l.logger.WithError(err).Warn("Failed to close window")
	}
}
