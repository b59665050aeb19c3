// Package metrics tracks per-stage frame timings of the viewer loop.
package metrics

import (
	"runtime"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Stage names one step of a loop iteration.
type Stage string

const (
	StageCapture Stage = "capture"
	StageFilter  Stage = "filter"
	StageOverlay Stage = "overlay"
	StageDisplay Stage = "display"
)

// DefaultReportInterval is how often a debug report is logged.
const DefaultReportInterval = 10 * time.Second

type stageStats struct {
	count int
	total time.Duration
	max   time.Duration
}

func (s stageStats) mean() time.Duration {
	if s.count == 0 {
		return 0
	}
	return s.total / time.Duration(s.count)
}

// Tracker is fed by a single loop goroutine and is not safe for concurrent
// use.
type Tracker struct {
	logger logrus.FieldLogger
	budget time.Duration
	every  time.Duration

	stages      map[Stage]*stageStats
	frames      uint64
	overruns    uint64
	failedReads uint64

	started    time.Time
	lastReport time.Time
	sinceLast  uint64
}

// NewTracker measures against a per-frame budget.
func NewTracker(budget time.Duration, logger logrus.FieldLogger) *Tracker {
	return &Tracker{
		logger: logger,
		budget: budget,
		every:  DefaultReportInterval,
		stages: make(map[Stage]*stageStats),
	}
}

// SetReportInterval changes the debug report period. Non-positive values
// disable periodic reports.
func (t *Tracker) SetReportInterval(d time.Duration) { t.every = d }

// Start marks the beginning of the session.
func (t *Tracker) Start(now time.Time) {
	t.started = now
	t.lastReport = now
}

// Observe records one stage duration.
func (t *Tracker) Observe(stage Stage, d time.Duration) {
	s, ok := t.stages[stage]
	if !ok {
		s = &stageStats{}
		t.stages[stage] = s
	}
	s.count++
	s.total += d
	if d > s.max {
		s.max = d
	}

	if t.budget > 0 && d > t.budget {
		t.logger.WithFields(logrus.Fields{
			"stage":    stage,
			"duration": d,
			"budget":   t.budget,
		}).Debug("Slow stage")
	}
}

// ReadFailed counts a capture that returned no frame.
func (t *Tracker) ReadFailed() { t.failedReads++ }

// Frame closes one loop iteration that took elapsed and emits the periodic
// report when it is due.
func (t *Tracker) Frame(now time.Time, elapsed time.Duration) {
	t.frames++
	t.sinceLast++
	if t.budget > 0 && elapsed > t.budget {
		t.overruns++
	}

	if t.every <= 0 || now.Sub(t.lastReport) < t.every {
		return
	}
	window := now.Sub(t.lastReport)
	fields := t.stageFields()
	fields["fps"] = float64(t.sinceLast) / window.Seconds()
	fields["overruns"] = t.overruns
	t.logger.WithFields(fields).Debug("Frame timings")

	t.lastReport = now
	t.sinceLast = 0
}

// Snapshot is a copy of the counters.
type Snapshot struct {
	Frames      uint64
	Overruns    uint64
	FailedReads uint64
	Mean        map[Stage]time.Duration
	Max         map[Stage]time.Duration
}

func (t *Tracker) Snapshot() Snapshot {
	s := Snapshot{
		Frames:      t.frames,
		Overruns:    t.overruns,
		FailedReads: t.failedReads,
		Mean:        make(map[Stage]time.Duration, len(t.stages)),
		Max:         make(map[Stage]time.Duration, len(t.stages)),
	}
	for name, st := range t.stages {
		s.Mean[name] = st.mean()
		s.Max[name] = st.max
	}
	return s
}

// Summary logs the session totals at info level.
func (t *Tracker) Summary(now time.Time) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	elapsed := now.Sub(t.started)
	fields := t.stageFields()
	fields["frames"] = humanize.Comma(int64(t.frames))
	fields["overruns"] = humanize.Comma(int64(t.overruns))
	fields["failed_reads"] = t.failedReads
	fields["uptime"] = elapsed.Round(time.Second).String()
	fields["heap"] = humanize.IBytes(mem.HeapAlloc)
	if elapsed > 0 {
		fields["avg_fps"] = humanize.FtoaWithDigits(float64(t.frames)/elapsed.Seconds(), 1)
	}
	t.logger.WithFields(fields).Info("Session summary")
}

func (t *Tracker) stageFields() logrus.Fields {
	names := make([]string, 0, len(t.stages))
	for name := range t.stages {
		names = append(names, string(name))
	}
	sort.Strings(names)

	fields := logrus.Fields{}
	for _, name := range names {
		st := t.stages[Stage(name)]
		fields[name+"_avg"] = st.mean().String()
		fields[name+"_max"] = st.max.String()
	}
	return fields
}
