package interfaces

import "time"

// JobStatus represents the current status of a scheduled job
type JobStatus struct {
	Name        string     `json:"name"`
	Schedule    string     `json:"schedule"`
	Description string     `json:"description"`
	LastRun     *time.Time `json:"lastRun,omitempty"`
	NextRun     *time.Time `json:"nextRun,omitempty"`
	IsRunning   bool       `json:"isRunning"`
	LastError   string     `json:"lastError,omitempty"`
}

// SchedulerService runs housekeeping jobs on cron schedules
type SchedulerService interface {
	Start() error
	Stop() error
	IsRunning() bool

	// RegisterJob adds a job on a standard 5-field cron schedule
	RegisterJob(name, schedule, description string, handler func() error) error

	// TriggerJob runs a registered job immediately in the background
	TriggerJob(name string) error

	GetJobStatus(name string) (*JobStatus, error)
	GetAllJobStatuses() map[string]*JobStatus
}
