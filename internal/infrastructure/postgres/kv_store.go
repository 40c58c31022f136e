package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*KVStore)(nil)
	_ repository.ExpiredPurger = (*KVStore)(nil)
)

// KVStore almacenamiento clave-valor sobre la tabla kv_store.
// Las filas vencidas se ocultan en Get y se borran con PurgeExpired.
type KVStore struct {
	q   Querier
	now func() time.Time
}

// NewKVStore construye el almacenamiento clave-valor.
func NewKVStore(q Querier) *KVStore {
	return &KVStore{q: q, now: time.Now}
}

// Get lee una clave. ok=false si no existe o ya venció.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx,
		`SELECT value FROM kv_store WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, true, nil
}

// Set crea o reemplaza una clave.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO kv_store (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = NULL, updated_at = now()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// SetTTL crea o reemplaza una clave que vence pasado ttl.
func (s *KVStore) SetTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return s.Set(ctx, key, value)
	}
	_, err := s.q.Exec(ctx, `
		INSERT INTO kv_store (key, value, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`,
		key, value, s.now().Add(ttl).UTC(),
	)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

// PurgeExpired borra las filas vencidas.
func (s *KVStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM kv_store WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("kv purge: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Remove elimina una clave; si no existe no hace nada.
func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("kv remove %s: %w", key, err)
	}
	return nil
}
