package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/BharathRam125/QueueCTL/job"
	"github.com/BharathRam125/QueueCTL"
	"github.com/BharathRam125/QueueCTL/store"
	"github.com/BharathRam125/QueueCTL/store/sqlite"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "queue.db")

	s, err := sqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	if err = s.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return s
}

func TestStore_Ping(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestStore_MigrateIdempotent(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestJobStore_EnqueueAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	j := &job.Job{
		ID:         "job-1",
		Command:    "echo hello",
		State:      job.StatePending,
		MaxRetries: 3,
		RunAt:      time.Now().UTC(),
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	got, err := s.GetJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Command != "echo hello" {
		t.Errorf("expected command %q, got %q", "echo hello", got.Command)
	}
	if got.State != job.StatePending {
		t.Errorf("expected state pending, got %s", got.State)
	}
}

func TestJobStore_EnqueueDuplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	j := &job.Job{
		ID: "dup", Command: "true", State: job.StatePending,
		MaxRetries: 3, RunAt: time.Now().UTC(),
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	err := s.EnqueueJob(ctx, j)
	if !errors.Is(err, queuectl.ErrJobAlreadyExists) {
		t.Fatalf("expected ErrJobAlreadyExists, got %v", err)
	}
}

func TestJobStore_ClaimNextJob_FIFO(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		j := &job.Job{
			ID:         fmt.Sprintf("job-%d", i),
			Command:    "true",
			State:      job.StatePending,
			MaxRetries: 3,
			RunAt:      now,
			CreatedAt:  now.Add(time.Duration(i) * time.Millisecond),
			UpdatedAt:  now,
		}
		if err := s.EnqueueJob(ctx, j); err != nil {
			t.Fatalf("enqueue job-%d: %v", i, err)
		}
	}

	claimed, err := s.ClaimNextJob(ctx, "wkr_test")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed == nil {
		t.Fatal("expected a claimed job, got nil")
	}
	if claimed.ID != "job-0" {
		t.Errorf("expected FIFO order to claim job-0 first, got %s", claimed.ID)
	}
	if claimed.State != job.StateProcessing {
		t.Errorf("expected state processing, got %s", claimed.State)
	}
	if claimed.ClaimedBy != "wkr_test" {
		t.Errorf("expected claimed_by wkr_test, got %q", claimed.ClaimedBy)
	}
}

func TestJobStore_ClaimNextJob_EmptyQueueReturnsNil(t *testing.T) {
	s := setupTestStore(t)
	claimed, err := s.ClaimNextJob(context.Background(), "wkr_test")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed != nil {
		t.Fatalf("expected nil on empty queue, got %+v", claimed)
	}
}

func TestJobStore_ClaimNextJob_Concurrent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	const numJobs = 8
	now := time.Now().UTC()
	for i := 0; i < numJobs; i++ {
		j := &job.Job{
			ID: fmt.Sprintf("job-%d", i), Command: "true", State: job.StatePending,
			MaxRetries: 3, RunAt: now,
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond), UpdatedAt: now,
		}
		if err := s.EnqueueJob(ctx, j); err != nil {
			t.Fatalf("enqueue job-%d: %v", i, err)
		}
	}

	var (
		mu      sync.Mutex
		claimed = make(map[string]bool)
		wg      sync.WaitGroup
	)
	for w := 0; w < numJobs*2; w++ {
		wg.Add(1)
		go func(workerID string) {
			defer wg.Done()
			j, err := s.ClaimNextJob(ctx, workerID)
			if err != nil || j == nil {
				return
			}
			mu.Lock()
			claimed[j.ID] = true
			mu.Unlock()
		}(fmt.Sprintf("wkr_%d", w))
	}
	wg.Wait()

	if len(claimed) != numJobs {
		t.Fatalf("expected exactly %d distinct jobs claimed, got %d", numJobs, len(claimed))
	}
}

func TestJobStore_CompleteJob(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	j := &job.Job{ID: "j1", Command: "true", State: job.StatePending, MaxRetries: 3, RunAt: now, CreatedAt: now, UpdatedAt: now}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := s.ClaimNextJob(ctx, "wkr_1"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := s.CompleteJob(ctx, "j1"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	got, err := s.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != job.StateCompleted {
		t.Errorf("expected completed, got %s", got.State)
	}
}

func TestJobStore_CompleteJob_RejectsNonProcessing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	j := &job.Job{ID: "j1", Command: "true", State: job.StatePending, MaxRetries: 3, RunAt: now, CreatedAt: now, UpdatedAt: now}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	err := s.CompleteJob(ctx, "j1")
	if !errors.Is(err, queuectl.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for a pending job, got %v", err)
	}
}

func TestJobStore_FailJob_RetriesThenDies(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	j := &job.Job{ID: "j1", Command: "false", State: job.StatePending, MaxRetries: 2, RunAt: now, CreatedAt: now, UpdatedAt: now}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if _, err := s.ClaimNextJob(ctx, "wkr_1"); err != nil {
		t.Fatalf("claim 1: %v", err)
	}
	if err := s.FailJob(ctx, "j1", "exit status 1"); err != nil {
		t.Fatalf("fail 1: %v", err)
	}
	got, err := s.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("get after fail 1: %v", err)
	}
	if got.State != job.StateFailed {
		t.Fatalf("expected failed after first failure, got %s", got.State)
	}
	if got.Attempts != 1 {
		t.Fatalf("expected attempts=1, got %d", got.Attempts)
	}

	// force RunAt into the past so the second claim is eligible
	past := time.Now().Add(-time.Hour).UTC().Format("2006-01-02T15:04:05.000Z")
	if _, err = s.DB().NewRaw("UPDATE jobs SET run_at = ? WHERE id = ?", past, "j1").Exec(ctx); err != nil {
		t.Fatalf("force run_at: %v", err)
	}

	if _, err = s.ClaimNextJob(ctx, "wkr_1"); err != nil {
		t.Fatalf("claim 2: %v", err)
	}
	if err = s.FailJob(ctx, "j1", "exit status 1"); err != nil {
		t.Fatalf("fail 2: %v", err)
	}
	got, err = s.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("get after fail 2: %v", err)
	}
	if got.State != job.StateDead {
		t.Fatalf("expected dead after exhausting retries, got %s", got.State)
	}
}

func TestJobStore_FailJob_UsesConfiguredBackoffBase(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.SetConfig(ctx, "backoff_base", "10"); err != nil {
		t.Fatalf("set backoff_base: %v", err)
	}

	now := time.Now().UTC()
	j := &job.Job{ID: "j1", Command: "false", State: job.StatePending, MaxRetries: 5, RunAt: now, CreatedAt: now, UpdatedAt: now}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := s.ClaimNextJob(ctx, "wkr_1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	before := time.Now().UTC()
	if err := s.FailJob(ctx, "j1", "exit status 1"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	got, err := s.GetJob(ctx, "j1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// attempts=1, base=10 → 10^1 = 10s delay
	minExpected := before.Add(9 * time.Second)
	if got.RunAt.Before(minExpected) {
		t.Fatalf("expected run_at at least 9s out for base=10, got delay of %v", got.RunAt.Sub(before))
	}
}

func TestJobStore_ListJobs_FilterByState(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.EnqueueJob(ctx, &job.Job{ID: "p1", Command: "true", State: job.StatePending, MaxRetries: 3, RunAt: now, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("enqueue p1: %v", err)
	}
	if err := s.EnqueueJob(ctx, &job.Job{ID: "p2", Command: "true", State: job.StatePending, MaxRetries: 3, RunAt: now, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("enqueue p2: %v", err)
	}

	jobs, err := s.ListJobs(ctx, job.ListOpts{State: job.StatePending})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 pending jobs, got %d", len(jobs))
	}
}

func TestJobStore_CountsByState(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.EnqueueJob(ctx, &job.Job{ID: "a", Command: "true", State: job.StatePending, MaxRetries: 3, RunAt: now, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	counts, err := s.CountsByState(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[job.StatePending] != 1 {
		t.Fatalf("expected 1 pending, got %d", counts[job.StatePending])
	}
}

func TestJobStore_RetryFromDLQ(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	j := &job.Job{ID: "dead-1", Command: "false", State: job.StatePending, MaxRetries: 1, RunAt: now, CreatedAt: now, UpdatedAt: now}
	if err := s.EnqueueJob(ctx, j); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := s.ClaimNextJob(ctx, "wkr_1"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := s.FailJob(ctx, "dead-1", "boom"); err != nil {
		t.Fatalf("fail: %v", err)
	}

	got, err := s.GetJob(ctx, "dead-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != job.StateDead {
		t.Fatalf("expected dead, got %s", got.State)
	}

	if err = s.RetryFromDLQ(ctx, "dead-1"); err != nil {
		t.Fatalf("retry from dlq: %v", err)
	}

	got, err = s.GetJob(ctx, "dead-1")
	if err != nil {
		t.Fatalf("get after retry: %v", err)
	}
	if got.State != job.StatePending {
		t.Fatalf("expected pending after retry, got %s", got.State)
	}
	if got.Attempts != 0 {
		t.Fatalf("expected attempts reset to 0, got %d", got.Attempts)
	}
}

func TestJobStore_RetryFromDLQ_RejectsNonDead(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if err := s.EnqueueJob(ctx, &job.Job{ID: "alive", Command: "true", State: job.StatePending, MaxRetries: 3, RunAt: now, CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	err := s.RetryFromDLQ(ctx, "alive")
	if !errors.Is(err, queuectl.ErrNotDead) {
		t.Fatalf("expected ErrNotDead, got %v", err)
	}
}

func TestConfigStore_SetGetList(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.SetConfig(ctx, "backoff_base", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.GetConfig(ctx, "backoff_base")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "2" {
		t.Fatalf("expected 2, got %q", got)
	}

	if err = s.SetConfig(ctx, "backoff_base", "3"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.GetConfig(ctx, "backoff_base")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if got != "3" {
		t.Fatalf("expected 3 after overwrite, got %q", got)
	}

	all, err := s.ListConfig(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if all["backoff_base"] != "3" {
		t.Fatalf("expected backoff_base=3 in list, got %q", all["backoff_base"])
	}
}

func TestConfigStore_GetMissing(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetConfig(context.Background(), "nope")
	if !errors.Is(err, queuectl.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestWorkerStore_RegisterListUnregister(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	w := &store.WorkerRegistration{WorkerID: "wkr_1", PID: 1234, StartedAt: time.Now().UTC()}
	if err := s.RegisterWorker(ctx, w); err != nil {
		t.Fatalf("register: %v", err)
	}

	workers, err := s.ListWorkers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(workers) != 1 || workers[0].WorkerID != "wkr_1" {
		t.Fatalf("expected 1 worker wkr_1, got %+v", workers)
	}

	if err = s.UnregisterWorker(ctx, "wkr_1"); err != nil {
		t.Fatalf("unregister: %v", err)
	}
	workers, err = s.ListWorkers(ctx)
	if err != nil {
		t.Fatalf("list after unregister: %v", err)
	}
	if len(workers) != 0 {
		t.Fatalf("expected 0 workers after unregister, got %d", len(workers))
	}
}
