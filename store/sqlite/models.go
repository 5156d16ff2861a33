package sqlite

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/BharathRam125/QueueCTL/job"
	"github.com/BharathRam125/QueueCTL/store"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

// jobModel is the bun row mapping for the jobs table.
type jobModel struct {
	bun.BaseModel `bun:"table:jobs,alias:j"`

	ID         string  `bun:"id,pk"`
	Command    string  `bun:"command,notnull"`
	State      string  `bun:"state,notnull"`
	Attempts   int     `bun:"attempts,notnull"`
	MaxRetries int     `bun:"max_retries,notnull"`
	LastError  string  `bun:"last_error"`
	ClaimedBy  string  `bun:"claimed_by"`
	RunAt      string  `bun:"run_at,notnull"`
	CreatedAt  string  `bun:"created_at,notnull"`
	UpdatedAt  string  `bun:"updated_at,notnull"`
	StartedAt  *string `bun:"started_at"`
	TimeoutMs  int64   `bun:"timeout_ms,notnull"`
}

func toJobModel(j *job.Job) *jobModel {
	m := &jobModel{
		ID:         j.ID,
		Command:    j.Command,
		State:      string(j.State),
		Attempts:   j.Attempts,
		MaxRetries: j.MaxRetries,
		LastError:  j.LastError,
		ClaimedBy:  j.ClaimedBy,
		RunAt:      j.RunAt.UTC().Format(timeLayout),
		CreatedAt:  j.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:  j.UpdatedAt.UTC().Format(timeLayout),
		TimeoutMs:  j.Timeout.Milliseconds(),
	}
	if j.StartedAt != nil {
		s := j.StartedAt.UTC().Format(timeLayout)
		m.StartedAt = &s
	}
	return m
}

func fromJobModel(m *jobModel) (*job.Job, error) {
	runAt, err := time.Parse(timeLayout, m.RunAt)
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(timeLayout, m.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := time.Parse(timeLayout, m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	j := &job.Job{
		ID:         m.ID,
		Command:    m.Command,
		State:      job.State(m.State),
		Attempts:   m.Attempts,
		MaxRetries: m.MaxRetries,
		LastError:  m.LastError,
		ClaimedBy:  m.ClaimedBy,
		RunAt:      runAt,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
		Timeout:    time.Duration(m.TimeoutMs) * time.Millisecond,
	}
	if m.StartedAt != nil {
		startedAt, parseErr := time.Parse(timeLayout, *m.StartedAt)
		if parseErr != nil {
			return nil, parseErr
		}
		j.StartedAt = &startedAt
	}
	return j, nil
}

// configModel is the bun row mapping for the config table.
type configModel struct {
	bun.BaseModel `bun:"table:config,alias:c"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

// workerModel is the bun row mapping for the workers table.
type workerModel struct {
	bun.BaseModel `bun:"table:workers,alias:w"`

	WorkerID  string `bun:"worker_id,pk"`
	PID       int    `bun:"pid,notnull"`
	StartedAt string `bun:"started_at,notnull"`
}

func toWorkerModel(w *store.WorkerRegistration) *workerModel {
	return &workerModel{
		WorkerID:  w.WorkerID,
		PID:       w.PID,
		StartedAt: w.StartedAt.UTC().Format(timeLayout),
	}
}

func fromWorkerModel(m *workerModel) (*store.WorkerRegistration, error) {
	startedAt, err := time.Parse(timeLayout, m.StartedAt)
	if err != nil {
		return nil, err
	}
	return &store.WorkerRegistration{
		WorkerID:  m.WorkerID,
		PID:       m.PID,
		StartedAt: startedAt,
	}, nil
}
