// Package scheduler starts scans on cron schedules. A job that comes due
// while a scan is running or paused is skipped, never queued.
package scheduler

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/logging"
	"github.com/anstrom/portsim/internal/scanning"
)

// Starter is the engine surface the scheduler needs. StartIfIdle must check
// and start in one step so a due job never resumes a paused run.
type Starter interface {
	StartIfIdle(cfg scanning.Config) (bool, error)
}

// Job describes one recurring scan.
type Job struct {
	Name string
	// Spec is a standard 5-field cron expression or a descriptor such as @hourly
	Spec string
	Scan scanning.Config
}

// JobInfo is the externally visible state of a scheduled job.
type JobInfo struct {
	ID       uuid.UUID          `json:"id"`
	Name     string             `json:"name"`
	Schedule string             `json:"schedule"`
	Target   string             `json:"target"`
	Range    scanning.PortRange `json:"port_range"`
	ScanType scanning.ScanType  `json:"scan_type"`
	LastRun  *time.Time         `json:"last_run,omitempty"`
	NextRun  *time.Time         `json:"next_run,omitempty"`
	Runs     int                `json:"runs"`
	Skipped  int                `json:"skipped"`
	LastErr  string             `json:"last_error,omitempty"`
}

type scheduledJob struct {
	id      uuid.UUID
	cronID  cron.EntryID
	job     Job
	lastRun time.Time
	runs    int
	skipped int
	lastErr error
}

// Scheduler manages scheduled scan jobs.
type Scheduler struct {
	engine  Starter
	cron    *cron.Cron
	logger  *logging.Logger
	now     func() time.Time
	jobs    map[uuid.UUID]*scheduledJob
	mu      sync.RWMutex
	running bool
}

// New creates a scheduler that starts scans on engine.
func New(engine Starter, logger *logging.Logger) *Scheduler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		engine: engine,
		cron:   cron.New(),
		logger: logger.WithComponent("scheduler"),
		now:    time.Now,
		jobs:   make(map[uuid.UUID]*scheduledJob),
	}
}

// ValidateSpec checks a cron expression.
func ValidateSpec(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return errors.NewValidationError(errors.CodeValidation,
			fmt.Sprintf("invalid cron expression: %v", err), "schedule", spec)
	}
	return nil
}

// AddJob registers a job. The scan configuration is validated up front so a
// bad job is rejected here rather than on every run.
func (s *Scheduler) AddJob(job Job) (uuid.UUID, error) {
	job.Spec = strings.TrimSpace(job.Spec)
	if err := ValidateSpec(job.Spec); err != nil {
		return uuid.Nil, err
	}
	if job.Scan.ScanType == "" {
		job.Scan.ScanType = scanning.ScanTypeTCP
	}
	if err := job.Scan.Validate(); err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()

	s.mu.Lock()
	defer s.mu.Unlock()

	cronID, err := s.cron.AddFunc(job.Spec, func() { s.execute(id) })
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add cron job: %w", err)
	}
	s.jobs[id] = &scheduledJob{id: id, cronID: cronID, job: job}

	s.logger.Info("Added scheduled scan", "job_id", id, "name", job.Name, "schedule", job.Spec, "target", job.Scan.Target)
	return id, nil
}

// RemoveJob unregisters a job. It reports whether the job existed.
func (s *Scheduler) RemoveJob(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return false
	}
	s.cron.Remove(j.cronID)
	delete(s.jobs, id)
	return true
}

// execute runs job id once.
func (s *Scheduler) execute(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return
	}

	now := s.now()
	started, err := s.engine.StartIfIdle(j.job.Scan)
	if err != nil {
		j.lastRun = now
		j.lastErr = err
		s.logger.ErrorScan("Scheduled scan failed to start", j.job.Scan.Target, err, "job_id", id, "name", j.job.Name)
		return
	}
	if !started {
		j.skipped++
		s.logger.Info("Skipping scheduled scan, engine busy", "job_id", id, "name", j.job.Name)
		return
	}
	j.lastRun = now
	j.runs++
	j.lastErr = nil
	s.logger.WithTarget(j.job.Scan.Target).Info("Scheduled scan started", "job_id", id, "name", j.job.Name)
}

// Jobs returns all jobs ordered by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, j := range s.jobs {
		info := JobInfo{
			ID:       j.id,
			Name:     j.job.Name,
			Schedule: j.job.Spec,
			Target:   j.job.Scan.Target,
			Range:    j.job.Scan.Range,
			ScanType: j.job.Scan.ScanType,
			Runs:     j.runs,
			Skipped:  j.skipped,
		}
		if !j.lastRun.IsZero() {
			last := j.lastRun
			info.LastRun = &last
		}
		if next := s.cron.Entry(j.cronID).Next; !next.IsZero() {
			info.NextRun = &next
		}
		if j.lastErr != nil {
			info.LastErr = j.lastErr.Error()
		}
		infos = append(infos, info)
	}

	slices.SortFunc(infos, func(a, b JobInfo) int { return strings.Compare(a.Name, b.Name) })
	return infos
}

// Start begins firing jobs.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler is already running")
	}
	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started", "jobs", len(s.jobs))
	return nil
}

// Stop stops the scheduler and waits for a running job callback to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}
