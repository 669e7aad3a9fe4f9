package scanning

import (
	"slices"
	"time"

	"github.com/anstrom/portsim/internal/services"
)

const (
	// closedSampleModulus selects which cursor positions may report closed.
	closedSampleModulus = 10
	percent             = 100.0
)

// DefaultCandidatePorts are the ports the simulation may report as open.
var DefaultCandidatePorts = []int{22, 80, 443, 8080, 21, 53}

// Parameters controls how findings are generated on each tick.
type Parameters struct {
	// OpenProbability is the chance per tick of reporting a candidate port open
	OpenProbability float64
	// ClosedProbability is the chance per eligible tick of reporting the cursor closed
	ClosedProbability float64
	// CandidatePorts is the fixed set of ports that may be reported open
	CandidatePorts []int
}

// DefaultParameters returns the stock simulation parameters.
func DefaultParameters() Parameters {
	return Parameters{
		OpenProbability:   0.10,
		ClosedProbability: 0.30,
		CandidatePorts:    slices.Clone(DefaultCandidatePorts),
	}
}

// State is the mutable part of a scan run. Step never modifies its input.
type State struct {
	Config    Config
	Status    Status
	Cursor    int
	Progress  float64
	Findings  []Finding
	StartedAt time.Time
	Elapsed   time.Duration
	Ticks     int
}

// NewState returns a running state positioned at the start of cfg's range.
func NewState(cfg Config, now time.Time) State {
	return State{
		Config:    cfg,
		Status:    StatusRunning,
		Cursor:    cfg.Range.Start,
		Findings:  []Finding{},
		StartedAt: now,
	}
}

// Step applies one tick to s. States that are not running are returned as is.
func Step(s State, p Parameters, rnd RandomSource, now time.Time) State {
	if s.Status != StatusRunning {
		return s
	}

	next := s
	next.Ticks++
	r := s.Config.Range
	next.Progress = float64(s.Cursor-r.Start+1) / float64(r.Total()) * percent

	eligible := eligibleOpenPorts(s, p.CandidatePorts)
	if rnd.Float64() < p.OpenProbability && len(eligible) > 0 {
		port := eligible[rnd.IntN(len(eligible))]
		next.Findings = appendFinding(next.Findings, port, PortOpen, now)
	}

	if rnd.Float64() < p.ClosedProbability && s.Cursor%closedSampleModulus == 0 {
		next.Findings = appendFinding(next.Findings, s.Cursor, PortClosed, now)
	}

	next.Cursor++

	if next.Cursor > r.End {
		next.Status = StatusCompleted
		next.Progress = percent
		next.Elapsed = now.Sub(s.StartedAt)
	}

	return next
}

// eligibleOpenPorts lists candidates inside the range that are not yet open,
// in candidate order.
func eligibleOpenPorts(s State, candidates []int) []int {
	reported := make(map[int]bool)
	for _, f := range s.Findings {
		if f.Status == PortOpen {
			reported[f.Port] = true
		}
	}

	eligible := make([]int, 0, len(candidates))
	for _, port := range candidates {
		if s.Config.Range.Contains(port) && !reported[port] {
			eligible = append(eligible, port)
		}
	}
	return eligible
}

// appendFinding always allocates so earlier snapshots keep their own backing array.
func appendFinding(findings []Finding, port int, status PortStatus, now time.Time) []Finding {
	return append(slices.Clip(findings), Finding{
		Port:      port,
		Status:    status,
		Service:   services.Lookup(port),
		Timestamp: now,
	})
}
