package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

var (
	_ repository.KeyValueStore = (*KVStore)(nil)
	_ repository.ExpiredPurger = (*KVStore)(nil)
)

type entry struct {
	value     string
	expiresAt time.Time // cero = no expira
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// KVStore almacenamiento clave-valor en memoria del proceso. Se pierde al reiniciar.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

// Option configura el KVStore.
type Option func(*KVStore)

// WithClock reemplaza el reloj usado para la expiración.
func WithClock(now func() time.Time) Option {
	return func(s *KVStore) { s.now = now }
}

// NewKVStore crea un almacenamiento vacío.
func NewKVStore(opts ...Option) *KVStore {
	s := &KVStore{data: make(map[string]entry), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && cur.expired(s.now()) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return s.SetTTL(ctx, key, value, 0)
}

func (s *KVStore) SetTTL(_ context.Context, key, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = e
	return nil
}

func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// PurgeExpired elimina las claves vencidas.
func (s *KVStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k, e := range s.data {
		if e.expired(now) {
			delete(s.data, k)
			n++
		}
	}
	return n, nil
}

// Len cantidad de claves almacenadas, incluidas las vencidas aún no purgadas.
func (s *KVStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
