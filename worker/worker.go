// Package worker provides the single-loop job-processing worker and the
// process supervisor that runs many of them concurrently.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/BharathRam125/QueueCTL/executor"
	"github.com/BharathRam125/QueueCTL/id"
	"github.com/BharathRam125/QueueCTL/job"
	"github.com/BharathRam125/QueueCTL/middleware"
	"github.com/BharathRam125/QueueCTL"
	"github.com/BharathRam125/QueueCTL/store"
)

func pid() int { return os.Getpid() }

// Worker runs a single poll/claim/execute loop against a shared Store.
// It registers itself when Run starts and unregisters on clean shutdown,
// matching the WorkerRegistration lifecycle.
type Worker struct {
	id      id.WorkerID
	store   store.Store
	exec    *executor.JobExecutor
	mw      middleware.Middleware
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures a Worker.
type Option func(*Worker)

// WithMiddleware overrides the default middleware chain.
func WithMiddleware(mw middleware.Middleware) Option {
	return func(w *Worker) { w.mw = mw }
}

// WithID overrides the worker's generated identifier — used by the
// __worker-run subcommand so the child process registers under the id
// its Manager already logged and supervises.
func WithID(workerID id.WorkerID) Option {
	return func(w *Worker) { w.id = workerID }
}

// WithLogger overrides the worker's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

// New creates a Worker polling s at pollInterval (one claim attempt per
// interval, a burst of pollBurst), executing jobs through exec.
func New(s store.Store, exec *executor.JobExecutor, pollInterval time.Duration, pollBurst int, opts ...Option) *Worker {
	logger := slog.Default()
	w := &Worker{
		id:      id.NewWorkerID(),
		store:   s,
		exec:    exec,
		limiter: rate.NewLimiter(rate.Every(pollInterval), pollBurst),
		logger:  logger,
	}
	w.mw = middleware.Chain(
		middleware.Recover(logger),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.Logging(logger),
		middleware.Timeout(logger),
	)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ID returns the worker's unique identifier.
func (w *Worker) ID() id.WorkerID {
	return w.id
}

// Run registers the worker and loops claiming and executing jobs until
// ctx is cancelled, then unregisters before returning. A job already
// claimed when ctx is cancelled is not interrupted: it runs to the end
// and its outcome is reported before the loop exits. A busy store is
// recoverable and just retries; any other claim error is fatal and is
// returned, causing the worker process to exit non-zero.
func (w *Worker) Run(ctx context.Context) error {
	reg := &store.WorkerRegistration{
		WorkerID:  w.id.String(),
		PID:       pid(),
		StartedAt: time.Now().UTC(),
	}
	if err := w.store.RegisterWorker(ctx, reg); err != nil {
		return err
	}
	defer func() {
		unregCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.store.UnregisterWorker(unregCtx, w.id.String()); err != nil {
			w.logger.Error("unregister worker failed", slog.String("worker_id", w.id.String()), slog.String("error", err.Error()))
		}
	}()

	w.logger.Info("worker started", slog.String("worker_id", w.id.String()))

	for {
		if err := w.limiter.Wait(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				w.logger.Info("worker shutting down", slog.String("worker_id", w.id.String()))
				return nil
			}
			return err
		}

		j, err := w.store.ClaimNextJob(ctx, w.id.String())
		if err != nil {
			if errors.Is(err, queuectl.ErrStoreBusy) {
				w.logger.Warn("store busy, retrying claim", slog.String("worker_id", w.id.String()))
				continue
			}
			w.logger.Error("fatal store error, worker exiting", slog.String("worker_id", w.id.String()), slog.String("error", err.Error()))
			return err
		}
		if j == nil {
			continue
		}

		w.process(context.WithoutCancel(ctx), j)
	}
}

// process executes a single claimed job through the middleware chain and
// reports the outcome back to the store.
func (w *Worker) process(ctx context.Context, j *job.Job) {
	terminal := func(ctx context.Context) error {
		return w.exec.Execute(ctx, j.Command)
	}

	err := w.mw(ctx, j, terminal)

	if err == nil {
		if completeErr := w.store.CompleteJob(ctx, j.ID); completeErr != nil {
			w.logger.Error("complete job failed", slog.String("job_id", j.ID), slog.String("error", completeErr.Error()))
		}
		return
	}

	if failErr := w.store.FailJob(ctx, j.ID, err.Error()); failErr != nil {
		w.logger.Error("fail job failed", slog.String("job_id", j.ID), slog.String("error", failErr.Error()))
	}
}
