package sqlite

import (
	"context"
)

type slotsRepo struct {
	db dbtx
}

func (r *slotsRepo) GetSlot(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM local_slots WHERE key = ?`, key).Scan(&v)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return v, nil
}

func (r *slotsRepo) PutSlot(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO local_slots (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, toMillis(now()),
	)
	return err
}

func (r *slotsRepo) DeleteSlot(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM local_slots WHERE key = ?`, key)
	return err
}
