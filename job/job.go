package job

import "time"

// State represents the lifecycle state of a job. The enum is closed and
// exhaustive: every transition a Store makes moves a Job between exactly
// these five values.
type State string

const (
	// StatePending means the job is waiting to be claimed by a worker.
	StatePending State = "pending"
	// StateProcessing means a worker currently holds the job.
	StateProcessing State = "processing"
	// StateCompleted means the job finished successfully. Terminal.
	StateCompleted State = "completed"
	// StateFailed means the job failed but is still eligible for retry
	// once RunAt elapses (Attempts < MaxRetries).
	StateFailed State = "failed"
	// StateDead means the job exhausted its retries. It sits in the
	// dead-letter queue until an operator calls retryFromDLQ. Terminal
	// absent manual intervention.
	StateDead State = "dead"
)

// Job is a unit of work: a shell command plus its retry bookkeeping.
type Job struct {
	ID         string        `json:"id"`
	Command    string        `json:"command"`
	State      State         `json:"state"`
	Attempts   int           `json:"attempts"`
	MaxRetries int           `json:"max_retries"`
	LastError  string        `json:"last_error,omitempty"`
	ClaimedBy  string        `json:"claimed_by,omitempty"`
	RunAt      time.Time     `json:"run_at"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	StartedAt  *time.Time    `json:"started_at,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty"`
}
