package sqlite

import (
	"context"
	"fmt"

	"github.com/BharathRam125/QueueCTL"
)

// GetConfig returns the value for key.
func (s *Store) GetConfig(ctx context.Context, key string) (string, error) {
	m := new(configModel)
	err := s.db.NewSelect().
		Model(m).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return "", queuectl.ErrConfigNotFound
		}
		return "", fmt.Errorf("queuectl/sqlite: get config: %w", err)
	}
	return m.Value, nil
}

// SetConfig upserts key to value.
func (s *Store) SetConfig(ctx context.Context, key, value string) error {
	m := &configModel{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(m).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("queuectl/sqlite: set config: %w", err)
	}
	return nil
}

// ListConfig returns every configured key/value pair.
func (s *Store) ListConfig(ctx context.Context) (map[string]string, error) {
	var models []configModel
	if err := s.db.NewSelect().Model(&models).Scan(ctx); err != nil {
		return nil, fmt.Errorf("queuectl/sqlite: list config: %w", err)
	}
	out := make(map[string]string, len(models))
	for _, m := range models {
		out[m.Key] = m.Value
	}
	return out, nil
}
