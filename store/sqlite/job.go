package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/BharathRam125/QueueCTL/backoff"
	"github.com/BharathRam125/QueueCTL/job"
	"github.com/BharathRam125/QueueCTL"
)

const defaultBackoffBase = 2.0

// backoffBase returns the configured backoff_base, falling back to
// defaultBackoffBase when unset or unparsable.
func (s *Store) backoffBase(ctx context.Context) float64 {
	v, err := s.GetConfig(ctx, "backoff_base")
	if err != nil {
		return defaultBackoffBase
	}
	base, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultBackoffBase
	}
	return base
}

// EnqueueJob persists a new job in pending state.
func (s *Store) EnqueueJob(ctx context.Context, j *job.Job) error {
	m := toJobModel(j)
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	if err != nil {
		if isDuplicateKey(err) {
			return queuectl.ErrJobAlreadyExists
		}
		return fmt.Errorf("queuectl/sqlite: enqueue job: %w", err)
	}
	return nil
}

// ClaimNextJob atomically claims the single oldest eligible job (pending,
// or failed with run_at <= now) and transitions it to processing. SQLite
// doesn't support FOR UPDATE SKIP LOCKED, so claiming uses BEGIN IMMEDIATE
// to take the write lock up front, then a subquery + UPDATE...RETURNING
// to select and mark exactly one row in a single statement, preventing
// two workers from claiming the same job.
func (s *Store) ClaimNextJob(ctx context.Context, workerID string) (*job.Job, error) {
	now := time.Now().UTC().Format(timeLayout)

	// Open sets _txlock=immediate, so BeginTx issues BEGIN IMMEDIATE.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		if isBusy(err) {
			return nil, queuectl.ErrStoreBusy
		}
		return nil, fmt.Errorf("queuectl/sqlite: begin immediate: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var m jobModel
	err = tx.NewRaw(`
		UPDATE jobs
		SET state = 'processing', claimed_by = ?, started_at = ?, updated_at = ?
		WHERE id = (
			SELECT id FROM jobs
			WHERE state = 'pending' OR (state = 'failed' AND run_at <= ?)
			ORDER BY created_at ASC, id ASC
			LIMIT 1
		)
		RETURNING *`,
		workerID, now, now, now,
	).Scan(ctx, &m)
	if err != nil {
		if isNoRows(err) {
			if commitErr := tx.Commit(); commitErr != nil {
				return nil, fmt.Errorf("queuectl/sqlite: commit empty claim: %w", commitErr)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("queuectl/sqlite: claim next job: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("queuectl/sqlite: commit claim: %w", err)
	}

	return fromJobModel(&m)
}

// CompleteJob transitions a processing job to completed. Fails with
// ErrInvalidTransition if the job is not currently PROCESSING.
func (s *Store) CompleteJob(ctx context.Context, jobID string) error {
	existing, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if existing.State != job.StateProcessing {
		return queuectl.ErrInvalidTransition
	}

	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", string(job.StateCompleted)).
		Set("updated_at = ?", now).
		Where("id = ? AND state = ?", jobID, string(job.StateProcessing)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: complete job: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return queuectl.ErrInvalidTransition
	}
	return nil
}

// FailJob records an execution failure. If attempts < max_retries the
// job returns to failed with RunAt computed from the Power backoff
// formula (base^attempts seconds); otherwise it moves to dead.
func (s *Store) FailJob(ctx context.Context, jobID string, execErr string) error {
	existing, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}

	attempts := existing.Attempts + 1
	now := time.Now().UTC()
	state := job.StateFailed
	runAt := now.Add(backoff.NewPower(s.backoffBase(ctx)).Delay(attempts))
	if attempts >= existing.MaxRetries {
		state = job.StateDead
		runAt = now
	}

	res, execErr2 := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", string(state)).
		Set("attempts = ?", attempts).
		Set("last_error = ?", execErr).
		Set("claimed_by = ?", "").
		Set("run_at = ?", runAt.Format(timeLayout)).
		Set("updated_at = ?", now.Format(timeLayout)).
		Where("id = ?", jobID).
		Exec(ctx)
	if execErr2 != nil {
		return fmt.Errorf("queuectl/sqlite: fail job: %w", execErr2)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return queuectl.ErrJobNotFound
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *Store) GetJob(ctx context.Context, jobID string) (*job.Job, error) {
	m := new(jobModel)
	err := s.db.NewSelect().
		Model(m).
		Where("id = ?", jobID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, queuectl.ErrJobNotFound
		}
		return nil, fmt.Errorf("queuectl/sqlite: get job: %w", err)
	}
	return fromJobModel(m)
}

// ListJobs returns jobs matching the given options.
func (s *Store) ListJobs(ctx context.Context, opts job.ListOpts) ([]*job.Job, error) {
	var models []jobModel
	q := s.db.NewSelect().Model(&models)

	if opts.State != "" {
		q = q.Where("state = ?", string(opts.State))
	}
	q = q.OrderExpr("updated_at DESC")

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("queuectl/sqlite: list jobs: %w", err)
	}

	jobs := make([]*job.Job, 0, len(models))
	for i := range models {
		j, convErr := fromJobModel(&models[i])
		if convErr != nil {
			return nil, fmt.Errorf("queuectl/sqlite: list jobs convert: %w", convErr)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// CountsByState returns the number of jobs in each state.
func (s *Store) CountsByState(ctx context.Context) (map[job.State]int64, error) {
	var rows []struct {
		State string `bun:"state"`
		Count int64  `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state").
		ColumnExpr("count(*) AS count").
		GroupExpr("state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("queuectl/sqlite: counts by state: %w", err)
	}

	counts := make(map[job.State]int64, len(rows))
	for _, r := range rows {
		counts[job.State(r.State)] = r.Count
	}
	return counts, nil
}

// RetryFromDLQ resets a dead job back to pending with attempts reset to
// zero, reusing the same job id — the queue's DLQ entries are dead jobs
// themselves, not a separate replay table.
func (s *Store) RetryFromDLQ(ctx context.Context, jobID string) error {
	existing, err := s.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if existing.State != job.StateDead {
		return queuectl.ErrNotDead
	}

	now := time.Now().UTC().Format(timeLayout)
	res, err := s.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("state = ?", string(job.StatePending)).
		Set("attempts = 0").
		Set("last_error = ?", "").
		Set("claimed_by = ?", "").
		Set("run_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", jobID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: retry from dlq: %w", err)
	}
	rows, _ := res.RowsAffected() //nolint:errcheck // driver always returns nil
	if rows == 0 {
		return queuectl.ErrJobNotFound
	}
	return nil
}
