package scanning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stepStart = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func rangeState(start, end int) State {
	return NewState(Config{
		Target:   "10.0.0.5",
		Range:    PortRange{Start: start, End: end},
		ScanType: ScanTypeTCP,
	}, stepStart)
}

func TestStep_ProgressAndCursor(t *testing.T) {
	s := rangeState(1, 100)
	s.Cursor = 20

	next := Step(s, DefaultParameters(), silentRandom(), stepStart.Add(time.Second))

	assert.InDelta(t, 20.0, next.Progress, 1e-9)
	assert.Equal(t, 21, next.Cursor)
	assert.Equal(t, StatusRunning, next.Status)
	assert.Equal(t, 1, next.Ticks)
	assert.Empty(t, next.Findings)
}

func TestStep_EmitsOpenAndClosed(t *testing.T) {
	s := rangeState(1, 100)
	s.Cursor = 20
	now := stepStart.Add(time.Second)
	rnd := &scriptedRandom{floats: []float64{0.05, 0.1}, ints: []int{1}, fallback: 0.99}

	next := Step(s, DefaultParameters(), rnd, now)

	require.Len(t, next.Findings, 2)
	assert.Equal(t, Finding{Port: 80, Status: PortOpen, Service: "HTTP", Timestamp: now}, next.Findings[0])
	assert.Equal(t, Finding{Port: 20, Status: PortClosed, Service: "Unknown", Timestamp: now}, next.Findings[1])
}

func TestStep_ThresholdsAreExclusive(t *testing.T) {
	s := rangeState(1, 100)
	s.Cursor = 30
	rnd := &scriptedRandom{floats: []float64{0.10, 0.30}, fallback: 0.99}

	next := Step(s, DefaultParameters(), rnd, stepStart)

	assert.Empty(t, next.Findings)
}

func TestStep_ClosedOnlyOnMultiplesOfTen(t *testing.T) {
	s := rangeState(1, 100)
	s.Cursor = 21

	next := Step(s, DefaultParameters(), &scriptedRandom{floats: []float64{0.99, 0}, fallback: 0.99}, stepStart)

	assert.Empty(t, next.Findings)
}

func TestStep_OpenPortsAreNotRepeated(t *testing.T) {
	s := rangeState(1, 100)
	for _, port := range []int{22, 80, 21} {
		s.Findings = append(s.Findings, Finding{Port: port, Status: PortOpen})
	}

	next := Step(s, DefaultParameters(), &scriptedRandom{floats: []float64{0, 0.99}, ints: []int{0}}, stepStart)
	require.Len(t, next.Findings, 4)
	assert.Equal(t, 53, next.Findings[3].Port)

	exhausted := Step(next, DefaultParameters(), eagerRandom(), stepStart)
	for _, f := range exhausted.Findings[4:] {
		assert.NotEqual(t, PortOpen, f.Status, "no candidate left to report open")
	}
}

func TestStep_CandidatesOutsideRangeAreIgnored(t *testing.T) {
	s := rangeState(1000, 1009)
	rnd := eagerRandom()

	for s.Status == StatusRunning {
		s = Step(s, DefaultParameters(), rnd, stepStart)
	}

	for _, f := range s.Findings {
		assert.Equal(t, PortClosed, f.Status)
	}
	require.Len(t, s.Findings, 1)
	assert.Equal(t, 1000, s.Findings[0].Port)
}

func TestStep_Completion(t *testing.T) {
	s := rangeState(5, 5)
	now := stepStart.Add(1500 * time.Millisecond)

	next := Step(s, DefaultParameters(), silentRandom(), now)

	assert.Equal(t, StatusCompleted, next.Status)
	assert.Equal(t, 6, next.Cursor)
	assert.InDelta(t, 100.0, next.Progress, 1e-9)
	assert.Equal(t, 1500*time.Millisecond, next.Elapsed)
}

func TestStep_DoesNotMutateInput(t *testing.T) {
	s := rangeState(1, 100)
	s.Cursor = 10
	s.Findings = append(make([]Finding, 0, 8), Finding{Port: 22, Status: PortOpen})
	before := len(s.Findings)

	next := Step(s, DefaultParameters(), eagerRandom(), stepStart)

	assert.Len(t, s.Findings, before)
	assert.Equal(t, 10, s.Cursor)
	assert.Greater(t, len(next.Findings), before)

	// Both findings slices must have independent backing arrays.
	s.Findings = append(s.Findings, Finding{Port: 9999})
	assert.NotEqual(t, 9999, next.Findings[before].Port)
}

func TestStep_IgnoresNonRunningStates(t *testing.T) {
	for _, status := range []Status{StatusIdle, StatusPaused, StatusCompleted, StatusCancelled} {
		s := rangeState(1, 100)
		s.Status = status

		assert.Equal(t, s, Step(s, DefaultParameters(), eagerRandom(), stepStart), "status %s", status)
	}
}
