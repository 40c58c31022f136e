package cart

import (
	"context"
	"sync"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

// Manager mantiene un Store por usuario. Cada carrito se hidrata desde el
// almacenamiento la primera vez que se abre.
type Manager struct {
	mu        sync.Mutex
	stores    map[string]*Store
	kv        repository.KeyValueStore
	log       *logger.Logger
	listeners []Listener
}

// NewManager construye el administrador de carritos.
func NewManager(kv repository.KeyValueStore, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		stores: make(map[string]*Store),
		kv:     kv,
		log:    log.Component("cart"),
	}
}

// Subscribe registra un listener que reciben todos los carritos abiertos desde ahora.
func (m *Manager) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Open devuelve el carrito del usuario, hidratándolo si es la primera vez.
func (m *Manager) Open(ctx context.Context, userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[userID]; ok {
		return s
	}
	s := newStore(userID, m.kv, m.log, append([]Listener(nil), m.listeners...))
	s.hydrate(ctx)
	m.stores[userID] = s
	return s
}

// Forget descarta el carrito en memoria. Lo persistido se conserva y el próximo
// Open lo vuelve a hidratar.
func (m *Manager) Forget(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, userID)
}

// Len cantidad de carritos abiertos en memoria.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
