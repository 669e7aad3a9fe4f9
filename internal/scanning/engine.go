package scanning

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/anstrom/portsim/internal/logging"
)

// DefaultTickInterval is the pause between two simulated port probes.
const DefaultTickInterval = 50 * time.Millisecond

// Observer receives a snapshot after every state change. OnSnapshot is called
// with the engine lock held, so it must not block or call back into the engine.
type Observer interface {
	OnSnapshot(Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Snapshot)

// OnSnapshot implements Observer.
func (f ObserverFunc) OnSnapshot(s Snapshot) { f(s) }

// Recorder receives engine events for metrics collection.
type Recorder interface {
	ScanStarted(scanType string)
	ScanFinished(scanType, outcome string, duration time.Duration)
	FindingRecorded(status string)
	TickApplied()
}

type nopRecorder struct{}

func (nopRecorder) ScanStarted(string)                        {}
func (nopRecorder) ScanFinished(string, string, time.Duration) {}
func (nopRecorder) FindingRecorded(string)                    {}
func (nopRecorder) TickApplied()                              {}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRandom sets the randomness source.
func WithRandom(r RandomSource) Option {
	return func(e *Engine) { e.rnd = r }
}

// WithScheduler sets the tick scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// WithParameters sets the finding generation parameters.
func WithParameters(p Parameters) Option {
	return func(e *Engine) { e.params = p }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorder = r
		}
	}
}

// Engine owns a single scan run and drives it from a scheduler.
// At most one run is active at a time.
type Engine struct {
	mu        sync.Mutex
	clock     Clock
	rnd       RandomSource
	scheduler Scheduler
	interval  time.Duration
	params    Parameters
	logger    *logging.Logger
	recorder  Recorder

	id      string
	state   State
	stop    func()
	summary *Summary

	observers    map[int]Observer
	nextObserver int
}

// NewEngine creates an idle engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:     SystemClock(),
		scheduler: TickerScheduler{},
		interval:  DefaultTickInterval,
		params:    DefaultParameters(),
		recorder:  nopRecorder{},
		state:     State{Status: StatusIdle, Findings: []Finding{}},
		observers: make(map[int]Observer),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = NewRandomSource(0)
	}
	if e.logger == nil {
		e.logger = logging.Default().WithComponent("engine")
	}
	return e
}

// Start begins a new run, or resumes a paused one. Calling Start while a run
// is active is a no-op. A rejected configuration leaves the engine untouched.
func (e *Engine) Start(cfg Config) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state.Status {
	case StatusRunning:
		return nil
	case StatusPaused:
		e.resumeLocked()
		return nil
	}
	return e.startLocked(cfg)
}

// StartIfIdle begins a new run only when no run is active. Unlike Start it
// never resumes a paused run. It reports whether a run was started.
func (e *Engine) StartIfIdle(cfg Config) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status == StatusRunning || e.state.Status == StatusPaused {
		return false, nil
	}
	if err := e.startLocked(cfg); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) startLocked(cfg Config) error {
	cfg.Target = strings.TrimSpace(cfg.Target)
	if cfg.ScanType == "" {
		cfg.ScanType = ScanTypeTCP
	}
	if err := cfg.Validate(); err != nil {
		e.logger.Debug("Scan rejected", "target", cfg.Target, "error", err)
		return err
	}

	id := uuid.NewString()
	e.id = id
	e.state = NewState(cfg, e.clock.Now())
	e.summary = nil
	e.stop = e.scheduler.Every(e.interval, func() { e.tick(id) })

	e.logger.WithScanID(id).InfoScan("Scan started", cfg.Target,
		"scan_type", cfg.ScanType,
		"start_port", cfg.Range.Start,
		"end_port", cfg.Range.End,
		"interval", e.interval)
	e.recorder.ScanStarted(string(cfg.ScanType))
	e.notifyLocked()
	return nil
}

// Pause suspends a running scan. It is a no-op in any other state.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status != StatusRunning {
		return
	}
	e.state.Status = StatusPaused
	e.logger.WithScanID(e.id).Info("Scan paused", "cursor", e.state.Cursor)
	e.notifyLocked()
}

// Resume continues a paused scan from the cursor it stopped at.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resumeLocked()
}

func (e *Engine) resumeLocked() {
	if e.state.Status != StatusPaused {
		return
	}
	e.state.Status = StatusRunning
	e.logger.WithScanID(e.id).Info("Scan resumed", "cursor", e.state.Cursor)
	e.notifyLocked()
}

// Cancel stops a running or paused scan. Findings collected so far are kept
// and progress is reset to zero. No tick is applied after Cancel returns.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Status != StatusRunning && e.state.Status != StatusPaused {
		return
	}
	e.stopLocked()
	e.state.Status = StatusCancelled
	e.state.Progress = 0

	e.logger.WithScanID(e.id).InfoScan("Scan cancelled", e.state.Config.Target,
		"cursor", e.state.Cursor,
		"findings", len(e.state.Findings))
	e.recorder.ScanFinished(string(e.state.Config.ScanType), string(StatusCancelled),
		e.clock.Now().Sub(e.state.StartedAt))
	e.notifyLocked()
}

// tick applies one step to the run identified by id.
func (e *Engine) tick(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if id != e.id || e.state.Status != StatusRunning {
		return
	}

	before := len(e.state.Findings)
	e.state = Step(e.state, e.params, e.rnd, e.clock.Now())
	e.recorder.TickApplied()
	for _, f := range e.state.Findings[before:] {
		e.recorder.FindingRecorded(string(f.Status))
		e.logger.Debug("Finding recorded", "scan_id", id, "port", f.Port, "status", f.Status)
	}

	if e.state.Status == StatusCompleted {
		e.stopLocked()
		if summary, ok := NewSummary(id, e.state); ok {
			e.summary = &summary
			e.logger.WithScanID(id).InfoScan("Scan completed", summary.Target,
				"open", summary.OpenCount,
				"closed", summary.ClosedCount,
				"elapsed_seconds", summary.ElapsedSeconds)
		}
		e.recorder.ScanFinished(string(e.state.Config.ScanType), string(StatusCompleted), e.state.Elapsed)
	}

	e.notifyLocked()
}

func (e *Engine) stopLocked() {
	if e.stop != nil {
		e.stop()
		e.stop = nil
	}
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Status
}

// Snapshot returns a copy of the current run state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		ID:             e.id,
		Target:         e.state.Config.Target,
		ScanType:       e.state.Config.ScanType,
		PortRange:      e.state.Config.Range,
		Status:         e.state.Status,
		Cursor:         e.state.Cursor,
		Progress:       e.state.Progress,
		Findings:       slices.Clone(e.state.Findings),
		ElapsedSeconds: e.state.Elapsed.Seconds(),
		Ticks:          e.state.Ticks,
	}
	if s.Findings == nil {
		s.Findings = []Finding{}
	}
	if !e.state.StartedAt.IsZero() {
		started := e.state.StartedAt
		s.StartedAt = &started
	}
	return s
}

// Summary returns the summary of the last completed run. It is cleared by
// the next successful Start.
func (e *Engine) Summary() (Summary, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.summary == nil {
		return Summary{}, false
	}
	return *e.summary, true
}

// Subscribe registers an observer and returns a function that removes it.
func (e *Engine) Subscribe(obs Observer) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	key := e.nextObserver
	e.nextObserver++
	e.observers[key] = obs

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.observers, key)
	}
}

func (e *Engine) notifyLocked() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.snapshotLocked()
	for _, obs := range e.observers {
		obs.OnSnapshot(snap)
	}
}
