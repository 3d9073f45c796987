package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/qanda/internal/interfaces"
)

type jobEntry struct {
	name        string
	schedule    string
	description string
	handler     func() error
	cronID      cron.EntryID
	lastRun     *time.Time
	isRunning   bool
	lastError   string
}

// Service implements interfaces.SchedulerService
type Service struct {
	cron     *cron.Cron
	logger   arbor.ILogger
	jobMu    sync.Mutex // Protects jobs and running
	globalMu sync.Mutex // Serialises job execution
	jobs     map[string]*jobEntry
	running  bool
}

var _ interfaces.SchedulerService = (*Service)(nil)

// NewService creates a new scheduler service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		cron:   cron.New(),
		logger: logger,
		jobs:   make(map[string]*jobEntry),
	}
}

// Start begins running registered jobs
func (s *Service) Start() error {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	s.cron.Start()
	s.running = true

	s.logger.Info().Int("jobs", len(s.jobs)).Msg("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish
func (s *Service) Stop() error {
	s.jobMu.Lock()
	if !s.running {
		s.jobMu.Unlock()
		return nil
	}
	s.running = false
	s.jobMu.Unlock()

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Timed out waiting for scheduled jobs to finish")
	}

	s.logger.Info().Msg("Scheduler stopped")
	return nil
}

func (s *Service) IsRunning() bool {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()
	return s.running
}

// RegisterJob registers a new job with the scheduler
func (s *Service) RegisterJob(name, schedule, description string, handler func() error) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already registered", name)
	}

	cronID, err := s.cron.AddFunc(schedule, func() {
		s.executeJob(name)
	})
	if err != nil {
		return fmt.Errorf("failed to add job to cron: %w", err)
	}

	s.jobs[name] = &jobEntry{
		name:        name,
		schedule:    schedule,
		description: description,
		handler:     handler,
		cronID:      cronID,
	}

	s.logger.Info().
		Str("job_name", name).
		Str("schedule", schedule).
		Msg("Job registered")

	return nil
}

// TriggerJob runs a job immediately in the background
func (s *Service) TriggerJob(name string) error {
	s.jobMu.Lock()
	_, exists := s.jobs[name]
	s.jobMu.Unlock()

	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	go s.executeJob(name)
	return nil
}

// GetJobStatus returns the status of a specific job
func (s *Service) GetJobStatus(name string) (*interfaces.JobStatus, error) {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	entry, exists := s.jobs[name]
	if !exists {
		return nil, fmt.Errorf("job %s not found", name)
	}
	return s.statusLocked(entry), nil
}

// GetAllJobStatuses returns the status of every registered job
func (s *Service) GetAllJobStatuses() map[string]*interfaces.JobStatus {
	s.jobMu.Lock()
	defer s.jobMu.Unlock()

	statuses := make(map[string]*interfaces.JobStatus, len(s.jobs))
	for name, entry := range s.jobs {
		statuses[name] = s.statusLocked(entry)
	}
	return statuses
}

func (s *Service) statusLocked(entry *jobEntry) *interfaces.JobStatus {
	status := &interfaces.JobStatus{
		Name:        entry.name,
		Schedule:    entry.schedule,
		Description: entry.description,
		LastRun:     entry.lastRun,
		IsRunning:   entry.isRunning,
		LastError:   entry.lastError,
	}
	if next := s.cron.Entry(entry.cronID).Next; !next.IsZero() {
		status.NextRun = &next
	}
	return status
}

func (s *Service) executeJob(name string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("job_name", name).
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("PANIC RECOVERED in job execution")

			s.jobMu.Lock()
			if entry, exists := s.jobs[name]; exists {
				entry.isRunning = false
				entry.lastError = fmt.Sprintf("panic: %v", r)
			}
			s.jobMu.Unlock()
		}
	}()

	s.globalMu.Lock()
	defer s.globalMu.Unlock()

	s.jobMu.Lock()
	entry, exists := s.jobs[name]
	if !exists {
		s.jobMu.Unlock()
		s.logger.Warn().Str("job_name", name).Msg("Job not found")
		return
	}
	entry.isRunning = true
	handler := entry.handler
	s.jobMu.Unlock()

	start := time.Now()
	err := handler()
	finished := time.Now()

	s.jobMu.Lock()
	entry.isRunning = false
	entry.lastRun = &finished
	if err != nil {
		entry.lastError = err.Error()
	} else {
		entry.lastError = ""
	}
	s.jobMu.Unlock()

	if err != nil {
		s.logger.Error().
			Str("job_name", name).
			Err(err).
			Dur("duration", finished.Sub(start)).
			Msg("Job execution failed")
		return
	}

	s.logger.Debug().
		Str("job_name", name).
		Dur("duration", finished.Sub(start)).
		Msg("Job execution completed")
}
