// Package store defines the aggregate persistence interface. It composes
// job.Store (the job state machine) with the config and worker-registry
// operations the Store component names. A single backend
// (store/sqlite) implements all of them over an embedded SQLite file.
package store

import (
	"context"
	"time"

	"github.com/BharathRam125/QueueCTL/job"
)

// WorkerRegistration records a running worker process for introspection
// via `queuectl status`.
type WorkerRegistration struct {
	WorkerID  string    `json:"worker_id"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// ConfigStore defines the persistence contract for the store's runtime
// key/value configuration table (max_retries, backoff_base, ...).
type ConfigStore interface {
	// GetConfig returns the value for key.
	GetConfig(ctx context.Context, key string) (string, error)

	// SetConfig upserts key to value.
	SetConfig(ctx context.Context, key, value string) error

	// ListConfig returns every configured key/value pair.
	ListConfig(ctx context.Context) (map[string]string, error)
}

// WorkerStore defines the persistence contract for worker liveness
// registration.
type WorkerStore interface {
	// RegisterWorker persists a new worker registration.
	RegisterWorker(ctx context.Context, w *WorkerRegistration) error

	// UnregisterWorker removes a worker's registration on clean exit.
	UnregisterWorker(ctx context.Context, workerID string) error

	// ListWorkers returns all currently registered workers.
	ListWorkers(ctx context.Context) ([]*WorkerRegistration, error)
}

// Store is the aggregate persistence interface. A single backend
// implements job.Store, ConfigStore, and WorkerStore together, plus
// lifecycle management.
type Store interface {
	job.Store
	ConfigStore
	WorkerStore

	// Migrate runs all schema migrations.
	Migrate(ctx context.Context) error

	// Ping checks database connectivity.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}
