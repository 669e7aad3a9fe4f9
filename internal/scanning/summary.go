package scanning

import (
	"fmt"
	"time"
)

// Summary is the frozen aggregate of a completed scan run.
type Summary struct {
	ScanID         string    `json:"scan_id"`
	Target         string    `json:"target"`
	ScanType       ScanType  `json:"scan_type"`
	PortRange      PortRange `json:"port_range"`
	OpenCount      int       `json:"open_count"`
	ClosedCount    int       `json:"closed_count"`
	TotalFindings  int       `json:"total_findings"`
	ElapsedSeconds float64   `json:"elapsed_seconds"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}

// NewSummary aggregates a completed state. It returns false for any other status.
func NewSummary(id string, s State) (Summary, bool) {
	if s.Status != StatusCompleted {
		return Summary{}, false
	}

	summary := Summary{
		ScanID:         id,
		Target:         s.Config.Target,
		ScanType:       s.Config.ScanType,
		PortRange:      s.Config.Range,
		TotalFindings:  len(s.Findings),
		ElapsedSeconds: s.Elapsed.Seconds(),
		StartedAt:      s.StartedAt,
		CompletedAt:    s.StartedAt.Add(s.Elapsed),
	}
	for _, f := range s.Findings {
		switch f.Status {
		case PortOpen:
			summary.OpenCount++
		case PortClosed:
			summary.ClosedCount++
		}
	}
	return summary, true
}

// String renders the summary the way the dashboard prints it.
func (s Summary) String() string {
	return fmt.Sprintf("Target: %s | Ports: %d-%d | Open: %d | Closed: %d | Time: %.2f seconds",
		s.Target, s.PortRange.Start, s.PortRange.End, s.OpenCount, s.ClosedCount, s.ElapsedSeconds)
}
