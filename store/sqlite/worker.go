package sqlite

import (
	"context"
	"fmt"

	"github.com/BharathRam125/QueueCTL/store"
)

// RegisterWorker persists a new worker registration.
func (s *Store) RegisterWorker(ctx context.Context, w *store.WorkerRegistration) error {
	m := toWorkerModel(w)
	_, err := s.db.NewInsert().
		Model(m).
		On("CONFLICT (worker_id) DO UPDATE").
		Set("pid = EXCLUDED.pid").
		Set("started_at = EXCLUDED.started_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: register worker: %w", err)
	}
	return nil
}

// UnregisterWorker removes a worker's registration on clean exit.
func (s *Store) UnregisterWorker(ctx context.Context, workerID string) error {
	_, err := s.db.NewDelete().
		Model((*workerModel)(nil)).
		Where("worker_id = ?", workerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: unregister worker: %w", err)
	}
	return nil
}

// ListWorkers returns all currently registered workers.
func (s *Store) ListWorkers(ctx context.Context) ([]*store.WorkerRegistration, error) {
	var models []workerModel
	if err := s.db.NewSelect().Model(&models).OrderExpr("started_at ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("queuectl/sqlite: list workers: %w", err)
	}

	out := make([]*store.WorkerRegistration, 0, len(models))
	for i := range models {
		w, err := fromWorkerModel(&models[i])
		if err != nil {
			return nil, fmt.Errorf("queuectl/sqlite: list workers convert: %w", err)
		}
		out = append(out, w)
	}
	return out, nil
}
