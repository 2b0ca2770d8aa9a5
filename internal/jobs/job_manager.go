package jobs

import (
	"fmt"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager starts and stops the scheduled jobs of the application as a
// group.
type JobManager struct {
	jobs []Job
}

func NewJobManager(jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs}
}

// StartAll starts every job in order. If one fails, the jobs already started
// are stopped.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start job %d: %w", i, err)
		}
	}
	return nil
}

// StopAll stops the jobs in reverse start order.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
}
