// Package controlapi is a thin layer 1:1 with Store operations, adding
// input validation and exit-code classification for CLI callers.
package controlapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/BharathRam125/QueueCTL/dlq"
	"github.com/BharathRam125/QueueCTL/job"
	"github.com/BharathRam125/QueueCTL"
	"github.com/BharathRam125/QueueCTL/store"
)

// Exit codes for each error kind the CLI can surface.
const (
	ExitOK                = 0
	ExitValidationError   = 1
	ExitConflictOrMissing = 2
)

// API is the control-plane facade the CLI commands call.
type API struct {
	store store.Store
	dlq   *dlq.Service
}

// New creates an API backed by s.
func New(s store.Store) *API {
	return &API{store: s, dlq: dlq.NewService(s)}
}

// ExitCode classifies err into the exit code its error kind is
// assigned. A nil error returns ExitOK.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, queuectl.ErrEmptyCommand),
		errors.Is(err, queuectl.ErrEmptyJobID),
		errors.Is(err, queuectl.ErrInvalidConfig):
		return ExitValidationError
	case errors.Is(err, queuectl.ErrJobAlreadyExists),
		errors.Is(err, queuectl.ErrJobNotFound),
		errors.Is(err, queuectl.ErrConfigNotFound),
		errors.Is(err, queuectl.ErrWorkerNotFound),
		errors.Is(err, queuectl.ErrInvalidTransition),
		errors.Is(err, queuectl.ErrNotDead),
		errors.Is(err, queuectl.ErrStoreCorrupt),
		errors.Is(err, queuectl.ErrStoreUnavailable):
		return ExitConflictOrMissing
	default:
		return ExitValidationError
	}
}

// Enqueue validates and persists a new pending job.
func (a *API) Enqueue(ctx context.Context, spec job.Spec) (*job.Job, error) {
	if spec.Command == "" {
		return nil, queuectl.ErrEmptyCommand
	}

	jobID := spec.ID
	if jobID == "" {
		jobID = uuid.NewString()
	}

	now := time.Now().UTC()
	maxRetries := 3
	if v, err := a.store.GetConfig(ctx, "max_retries"); err == nil {
		if n, convErr := strconv.Atoi(v); convErr == nil {
			maxRetries = n
		}
	}
	if spec.MaxRetries != nil {
		maxRetries = *spec.MaxRetries
	}

	runAt := spec.RunAt
	if runAt.IsZero() {
		runAt = now
	}

	j := &job.Job{
		ID:         jobID,
		Command:    spec.Command,
		State:      job.StatePending,
		MaxRetries: maxRetries,
		RunAt:      runAt,
		CreatedAt:  now,
		UpdatedAt:  now,
		Timeout:    spec.Timeout,
	}
	if err := a.store.EnqueueJob(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

// validJobStates are the only values List accepts for opts.State.
var validJobStates = map[job.State]bool{
	job.StatePending:    true,
	job.StateProcessing: true,
	job.StateCompleted:  true,
	job.StateFailed:     true,
	job.StateDead:       true,
}

// List returns jobs matching opts. An opts.State outside the five known
// job states is a VALIDATION_ERROR.
func (a *API) List(ctx context.Context, opts job.ListOpts) ([]*job.Job, error) {
	if opts.State != "" && !validJobStates[opts.State] {
		return nil, fmt.Errorf("%w: unknown state %q", queuectl.ErrInvalidConfig, opts.State)
	}
	return a.store.ListJobs(ctx, opts)
}

// Counts returns the number of jobs in each state.
func (a *API) Counts(ctx context.Context) (map[job.State]int64, error) {
	return a.store.CountsByState(ctx)
}

// DLQList returns dead-letter jobs.
func (a *API) DLQList(ctx context.Context, opts job.ListOpts) ([]*job.Job, error) {
	return a.dlq.List(ctx, opts)
}

// DLQRetry resets a dead job back to pending.
func (a *API) DLQRetry(ctx context.Context, jobID string) error {
	if jobID == "" {
		return queuectl.ErrEmptyJobID
	}
	return a.dlq.Retry(ctx, jobID)
}

// ConfigGet returns a single config value.
func (a *API) ConfigGet(ctx context.Context, key string) (string, error) {
	return a.store.GetConfig(ctx, key)
}

// ConfigSet validates and persists a config value. max_retries and
// backoff_base must be valid integers/floats respectively.
func (a *API) ConfigSet(ctx context.Context, key, value string) error {
	switch key {
	case "max_retries":
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: max_retries must be an integer", queuectl.ErrInvalidConfig)
		}
	case "backoff_base":
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Errorf("%w: backoff_base must be a number", queuectl.ErrInvalidConfig)
		}
	}
	return a.store.SetConfig(ctx, key, value)
}

// ConfigList returns every configured key/value pair.
func (a *API) ConfigList(ctx context.Context) (map[string]string, error) {
	return a.store.ListConfig(ctx)
}

// ListWorkers returns all currently registered workers.
func (a *API) ListWorkers(ctx context.Context) ([]*store.WorkerRegistration, error) {
	return a.store.ListWorkers(ctx)
}
