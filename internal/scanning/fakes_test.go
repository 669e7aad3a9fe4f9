package scanning

import (
	"sync"
	"time"
)

// fakeClock advances by step on every call to Now.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// scriptedRandom replays fixed values. Once a queue is empty Float64 returns
// fallback and IntN returns 0.
type scriptedRandom struct {
	mu       sync.Mutex
	floats   []float64
	ints     []int
	fallback float64
}

func (r *scriptedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return r.fallback
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0] % n
	r.ints = r.ints[1:]
	return v
}

// silentRandom never triggers a finding.
func silentRandom() *scriptedRandom { return &scriptedRandom{fallback: 0.99} }

// eagerRandom triggers every finding it can.
func eagerRandom() *scriptedRandom { return &scriptedRandom{fallback: 0} }

// manualScheduler records callbacks so tests decide when ticks happen.
type manualScheduler struct {
	mu      sync.Mutex
	fns     []func()
	stopped []bool
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.fns)
	s.fns = append(s.fns, fn)
	s.stopped = append(s.stopped, false)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.stopped[idx] = true
	}
}

// active returns the latest callback unless it was stopped.
func (s *manualScheduler) active() func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fns) == 0 || s.stopped[len(s.fns)-1] {
		return nil
	}
	return s.fns[len(s.fns)-1]
}

// Fire invokes the active callback up to n times and returns how many ran.
func (s *manualScheduler) Fire(n int) int {
	for i := 0; i < n; i++ {
		fn := s.active()
		if fn == nil {
			return i
		}
		fn()
	}
	return n
}

// FireRaw invokes the callback registered at idx even if it was stopped.
func (s *manualScheduler) FireRaw(idx int) {
	s.mu.Lock()
	fn := s.fns[idx]
	s.mu.Unlock()
	fn()
}

func (s *manualScheduler) Scheduled() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

func (s *manualScheduler) Stopped(idx int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped[idx]
}

// recordingRecorder counts engine events.
type recordingRecorder struct {
	mu       sync.Mutex
	started  int
	outcomes []string
	findings map[string]int
	ticks    int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{findings: make(map[string]int)}
}

func (r *recordingRecorder) ScanStarted(string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *recordingRecorder) ScanFinished(_, outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
}

func (r *recordingRecorder) FindingRecorded(status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findings[status]++
}

func (r *recordingRecorder) TickApplied() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
}
