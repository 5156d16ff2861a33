package job

import "context"

// ListOpts controls pagination and filtering for job list queries.
type ListOpts struct {
	// Limit is the maximum number of jobs to return. Zero means no limit.
	Limit int
	// Offset is the number of jobs to skip.
	Offset int
	// State filters by job state. Empty means all states.
	State State
}

// Store defines the persistence contract for jobs: the operations
// the Store component: enqueue, claimNextJob, completeJob, failJob,
// listJobs, countsByState, retryFromDLQ.
type Store interface {
	// EnqueueJob persists a new job in the pending state.
	EnqueueJob(ctx context.Context, j *Job) error

	// ClaimNextJob atomically claims the single oldest eligible job
	// (pending, or failed with RunAt <= now) and transitions it to
	// processing. Returns (nil, nil) when no job is eligible.
	ClaimNextJob(ctx context.Context, workerID string) (*Job, error)

	// CompleteJob transitions a processing job to completed.
	CompleteJob(ctx context.Context, jobID string) error

	// FailJob records an execution failure. If attempts < max_retries
	// the job returns to failed/pending-for-retry with RunAt computed
	// from the backoff formula; otherwise it moves to dead.
	FailJob(ctx context.Context, jobID string, execErr string) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*Job, error)

	// ListJobs returns jobs matching the given options.
	ListJobs(ctx context.Context, opts ListOpts) ([]*Job, error)

	// CountsByState returns the number of jobs in each state.
	CountsByState(ctx context.Context) (map[State]int64, error)

	// RetryFromDLQ resets a dead job back to pending with attempts
	// reset to zero, reusing the same job id.
	RetryFromDLQ(ctx context.Context, jobID string) error
}
