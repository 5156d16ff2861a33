package dlq

import (
	"context"

	"github.com/BharathRam125/QueueCTL/job"
)

// Service provides high-level dead-letter-queue operations over a
// job.Store. Unlike a separate-entry DLQ design, this queue has no
// table of its own: a dead job IS its own DLQ entry, so List/Retry act
// directly on the job store's dead-state rows.
type Service struct {
	jobs job.Store
}

// NewService creates a DLQ service backed by the given job store.
func NewService(jobs job.Store) *Service {
	return &Service{jobs: jobs}
}

// List returns jobs currently in the dead state.
func (s *Service) List(ctx context.Context, opts job.ListOpts) ([]*job.Job, error) {
	opts.State = job.StateDead
	return s.jobs.ListJobs(ctx, opts)
}

// Retry resets a dead job back to pending, attempts=0, reusing its
// original ID rather than minting a new job.
func (s *Service) Retry(ctx context.Context, jobID string) error {
	return s.jobs.RetryFromDLQ(ctx, jobID)
}

// Count returns the number of jobs currently in the dead state.
func (s *Service) Count(ctx context.Context) (int64, error) {
	counts, err := s.jobs.CountsByState(ctx)
	if err != nil {
		return 0, err
	}
	return counts[job.StateDead], nil
}
