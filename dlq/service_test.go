package dlq_test

import (
	"context"
	"errors"
	"testing"

	"github.com/BharathRam125/QueueCTL/dlq"
	"github.com/BharathRam125/QueueCTL/job"
)

var errNotFound = errors.New("job not found")

// fakeStore is a minimal in-memory job.Store stub used only to exercise
// dlq.Service's thin pass-through logic in isolation from the real
// sqlite-backed store (covered separately in store/sqlite).
type fakeStore struct {
	jobs map[string]*job.Job
}

func newFakeStore() *fakeStore { return &fakeStore{jobs: map[string]*job.Job{}} }

func (f *fakeStore) EnqueueJob(_ context.Context, j *job.Job) error {
	f.jobs[j.ID] = j
	return nil
}
func (f *fakeStore) ClaimNextJob(_ context.Context, _ string) (*job.Job, error) { return nil, nil }
func (f *fakeStore) CompleteJob(_ context.Context, _ string) error              { return nil }
func (f *fakeStore) FailJob(_ context.Context, _ string, _ string) error        { return nil }
func (f *fakeStore) GetJob(_ context.Context, id string) (*job.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, errNotFound
	}
	return j, nil
}
func (f *fakeStore) ListJobs(_ context.Context, opts job.ListOpts) ([]*job.Job, error) {
	var out []*job.Job
	for _, j := range f.jobs {
		if opts.State == "" || j.State == opts.State {
			out = append(out, j)
		}
	}
	return out, nil
}
func (f *fakeStore) CountsByState(_ context.Context) (map[job.State]int64, error) {
	counts := map[job.State]int64{}
	for _, j := range f.jobs {
		counts[j.State]++
	}
	return counts, nil
}
func (f *fakeStore) RetryFromDLQ(_ context.Context, id string) error {
	j, ok := f.jobs[id]
	if !ok {
		return errNotFound
	}
	j.State = job.StatePending
	j.Attempts = 0
	return nil
}

func TestService_List_ReturnsOnlyDeadJobs(t *testing.T) {
	s := newFakeStore()
	_ = s.EnqueueJob(context.Background(), &job.Job{ID: "a", State: job.StatePending})
	_ = s.EnqueueJob(context.Background(), &job.Job{ID: "b", State: job.StateDead})

	svc := dlq.NewService(s)
	dead, err := svc.List(context.Background(), job.ListOpts{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(dead) != 1 || dead[0].ID != "b" {
		t.Fatalf("expected only job b, got %+v", dead)
	}
}

func TestService_Retry_ResetsJobInPlace(t *testing.T) {
	s := newFakeStore()
	_ = s.EnqueueJob(context.Background(), &job.Job{ID: "dead-job", State: job.StateDead, Attempts: 5})

	svc := dlq.NewService(s)
	if err := svc.Retry(context.Background(), "dead-job"); err != nil {
		t.Fatalf("Retry: %v", err)
	}

	got, _ := s.GetJob(context.Background(), "dead-job")
	if got.State != job.StatePending {
		t.Errorf("State = %q, want %q", got.State, job.StatePending)
	}
	if got.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0", got.Attempts)
	}
	if got.ID != "dead-job" {
		t.Error("retry must reuse the same job id, not mint a new one")
	}
}

func TestService_Count_CountsDeadOnly(t *testing.T) {
	s := newFakeStore()
	_ = s.EnqueueJob(context.Background(), &job.Job{ID: "a", State: job.StateCompleted})
	_ = s.EnqueueJob(context.Background(), &job.Job{ID: "b", State: job.StateDead})
	_ = s.EnqueueJob(context.Background(), &job.Job{ID: "c", State: job.StateDead})

	svc := dlq.NewService(s)
	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}
