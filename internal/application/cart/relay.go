package cart

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/ports"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

// EventRelay convierte los avisos del carrito en eventos cart.updated.v1.
// Encola sin bloquear: si la cola está llena el aviso se descarta y se registra.
type EventRelay struct {
	publisher ports.EventPublisher
	log       *logger.Logger
	queue     chan Snapshot
	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
}

// NewEventRelay crea el relay con una cola de queueSize avisos.
func NewEventRelay(publisher ports.EventPublisher, log *logger.Logger, queueSize int) *EventRelay {
	if log == nil {
		log = logger.Nop()
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	return &EventRelay{
		publisher: publisher,
		log:       log.Component("cart-relay"),
		queue:     make(chan Snapshot, queueSize),
	}
}

// Listener devuelve la función a registrar con Manager.Subscribe.
func (r *EventRelay) Listener() Listener {
	return r.enqueue
}

func (r *EventRelay) enqueue(snap Snapshot) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- snap:
	default:
		r.log.Warn().Str("user_id", snap.UserID).Msg("cola de eventos llena, aviso descartado")
	}
}

// Start lanza workers que publican hasta que se llame a Close.
func (r *EventRelay) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			for snap := range r.queue {
				r.publish(snap)
			}
		}()
	}
}

func (r *EventRelay) publish(snap Snapshot) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := ports.CartUpdated{
		EventType: ports.CartUpdatedRoutingKey,
		UserID:    snap.UserID,
		Count:     snap.Count,
		Total:     snap.Total,
		Timestamp: time.Now().UTC(),
	}
	if err := r.publisher.PublishCartUpdated(ctx, ev); err != nil {
		r.log.Error().Err(err).Str("user_id", snap.UserID).Msg("publicar cart.updated")
	}
}

// Close cierra la cola y espera a que los workers publiquen lo pendiente.
// Los avisos posteriores se ignoran.
func (r *EventRelay) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	r.wg.Wait()
}
