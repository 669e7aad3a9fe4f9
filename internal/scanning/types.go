package scanning

import (
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/anstrom/portsim/internal/errors"
)

const (
	// Port validation constants.
	minPort = 1
	maxPort = 65535
)

// ScanType is the scan technique selected by the user. It is recorded with the
// run but does not change how findings are generated.
type ScanType string

const (
	ScanTypeTCP           ScanType = "tcp"
	ScanTypeSYN           ScanType = "syn"
	ScanTypeUDP           ScanType = "udp"
	ScanTypeComprehensive ScanType = "comprehensive"
)

var validScanTypes = map[ScanType]bool{
	ScanTypeTCP:           true,
	ScanTypeSYN:           true,
	ScanTypeUDP:           true,
	ScanTypeComprehensive: true,
}

// ParseScanType converts a user supplied string into a ScanType.
// An empty string selects tcp.
func ParseScanType(s string) (ScanType, error) {
	if s == "" {
		return ScanTypeTCP, nil
	}
	st := ScanType(strings.ToLower(strings.TrimSpace(s)))
	if !validScanTypes[st] {
		return "", errors.ErrInvalidOption("scan_type", s)
	}
	return st, nil
}

// PortRange is an inclusive range of ports.
type PortRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Total returns the number of ports in the range.
func (r PortRange) Total() int {
	return r.End - r.Start + 1
}

// Contains reports whether port falls inside the range.
func (r PortRange) Contains(port int) bool {
	return port >= r.Start && port <= r.End
}

// Validate checks 1 <= Start <= End <= 65535.
func (r PortRange) Validate() error {
	if r.Start < minPort || r.Start > maxPort {
		return errors.ErrPortOutOfRange("start_port", r.Start)
	}
	if r.End < minPort || r.End > maxPort {
		return errors.ErrPortOutOfRange("end_port", r.End)
	}
	if r.Start > r.End {
		return errors.ErrPortOrder(r.Start, r.End)
	}
	return nil
}

// Config represents the configuration for a simulated scan.
type Config struct {
	// Target is the IP address or hostname being scanned
	Target string `json:"target"`
	// Range is the inclusive port range walked by the cursor
	Range PortRange `json:"port_range"`
	// ScanType is cosmetic and only echoed back to observers
	ScanType ScanType `json:"scan_type"`
}

// Validate checks if the scan configuration is valid.
func (c *Config) Validate() error {
	target := strings.TrimSpace(c.Target)
	if target == "" {
		return errors.ErrTargetRequired()
	}
	if !isValidTarget(target) {
		return errors.ErrInvalidTarget(c.Target)
	}
	if c.ScanType != "" && !validScanTypes[c.ScanType] {
		return errors.ErrInvalidOption("scan_type", string(c.ScanType))
	}
	return c.Range.Validate()
}

// isValidTarget accepts IP literals and syntactically valid domain names.
func isValidTarget(target string) bool {
	if _, err := netip.ParseAddr(target); err == nil {
		return true
	}
	if strings.ContainsAny(target, " \t/") {
		return false
	}
	_, ok := dns.IsDomainName(target)
	return ok
}

// Status is the lifecycle state of a scan run.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether no further transitions happen without a new Start.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PortStatus is the simulated state of a single port.
type PortStatus string

const (
	PortOpen   PortStatus = "open"
	PortClosed PortStatus = "closed"
)

// Finding is one reported observation produced during a scan run.
type Finding struct {
	Port      int        `json:"port"`
	Status    PortStatus `json:"status"`
	Service   string     `json:"service"`
	Timestamp time.Time  `json:"timestamp"`
}

// Snapshot is an immutable copy of the engine state handed to observers.
type Snapshot struct {
	ID             string     `json:"id,omitempty"`
	Target         string     `json:"target,omitempty"`
	ScanType       ScanType   `json:"scan_type,omitempty"`
	PortRange      PortRange  `json:"port_range"`
	Status         Status     `json:"status"`
	Cursor         int        `json:"cursor"`
	Progress       float64    `json:"progress"`
	Findings       []Finding  `json:"findings"`
	ElapsedSeconds float64    `json:"elapsed_seconds"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	Ticks          int        `json:"ticks"`
}

// OpenPorts returns the ports reported open, in discovery order.
func (s Snapshot) OpenPorts() []int {
	ports := make([]int, 0)
	for _, f := range s.Findings {
		if f.Status == PortOpen {
			ports = append(ports, f.Port)
		}
	}
	return ports
}
