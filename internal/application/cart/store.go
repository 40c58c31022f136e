// Package cart mantiene el carrito de cada usuario: líneas con cantidad acotada
// por el stock, persistencia completa en cada mutación y aviso a suscriptores.
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

// Snapshot estado del carrito en un instante. Las líneas son una copia.
type Snapshot struct {
	UserID string
	Lines  []entity.CartLine
	Total  decimal.Decimal
	Count  int
}

// Listener recibe un aviso después de cada mutación. Se invoca fuera del lock
// del carrito y no debe bloquear; el contenido es orientativo.
type Listener func(Snapshot)

// Adjustment cambio aplicado a una línea al compararla con el catálogo vigente.
type Adjustment struct {
	ProductID string
	Name      string
	Previous  int
	Current   int // 0 = la línea se quitó
}

// Store carrito de un usuario. Todas las operaciones son seguras para uso concurrente;
// cada mutación se completa (incluida la persistencia) antes de liberar el lock.
type Store struct {
	mu        sync.Mutex
	userID    string
	key       string
	lines     []entity.CartLine
	kv        repository.KeyValueStore
	log       *logger.Logger
	listeners []Listener
}

func newStore(userID string, kv repository.KeyValueStore, log *logger.Logger, listeners []Listener) *Store {
	return &Store{
		userID:    userID,
		key:       Key(userID),
		kv:        kv,
		log:       log,
		listeners: listeners,
	}
}

// Key clave de almacenamiento del carrito de un usuario.
func Key(userID string) string {
	return "carrito:" + userID
}

// AddToCart agrega qty unidades del producto. Si la línea existe suma a la cantidad
// actual; en ambos casos la cantidad queda acotada por product.Stock sin error.
// La foto del producto en la línea se reemplaza por product.
// qty <= 0 o un producto sin stock no modifican el carrito.
func (s *Store) AddToCart(ctx context.Context, product entity.Product, qty int) Snapshot {
	if qty <= 0 {
		return s.Snapshot()
	}
	return s.mutate(ctx, func() bool {
		if i := s.indexOf(product.ID); i >= 0 {
			next := min(s.lines[i].Quantity+qty, product.Stock)
			if next <= 0 {
				s.removeAt(i)
				return true
			}
			s.lines[i] = entity.CartLine{Product: product, Quantity: next}
			return true
		}
		q := min(qty, product.Stock)
		if q <= 0 {
			return false
		}
		s.lines = append(s.lines, entity.CartLine{Product: product, Quantity: q})
		return true
	})
}

// RemoveFromCart quita la línea del producto. Si no existe no hace nada.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) Snapshot {
	return s.mutate(ctx, func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		s.removeAt(i)
		return true
	})
}

// UpdateQuantity fija la cantidad de una línea, acotada por el stock de su foto.
// qty <= 0 equivale a RemoveFromCart. Un producto que no está en el carrito se ignora.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, qty int) Snapshot {
	return s.mutate(ctx, func() bool {
		i := s.indexOf(productID)
		if i < 0 {
			return false
		}
		q := min(qty, s.lines[i].Product.Stock)
		if q <= 0 {
			s.removeAt(i)
			return true
		}
		s.lines[i].Quantity = q
		return true
	})
}

// ClearCart vacía el carrito. Es idempotente.
func (s *Store) ClearCart(ctx context.Context) Snapshot {
	return s.mutate(ctx, func() bool {
		s.lines = nil
		return true
	})
}

// Reconcile compara cada línea con el producto vigente que devuelve lookup:
// actualiza la foto, acota la cantidad al stock actual y quita los productos
// que ya no existen o se quedaron sin stock. Devuelve los cambios de cantidad.
func (s *Store) Reconcile(ctx context.Context, lookup func(id string) (entity.Product, bool)) []Adjustment {
	var adjustments []Adjustment
	s.mutate(ctx, func() bool {
		adjustments = s.reconcileLocked(lookup)
		return len(adjustments) > 0 || len(s.lines) > 0
	})
	return adjustments
}

// checkout reconcilia y, si nada cambió y hay líneas, las devuelve y vacía el carrito
// en la misma sección crítica.
func (s *Store) checkout(ctx context.Context, lookup func(id string) (entity.Product, bool)) ([]entity.CartLine, []Adjustment) {
	var (
		taken       []entity.CartLine
		adjustments []Adjustment
	)
	s.mutate(ctx, func() bool {
		adjustments = s.reconcileLocked(lookup)
		if len(adjustments) > 0 || len(s.lines) == 0 {
			return len(adjustments) > 0
		}
		taken = s.lines
		s.lines = nil
		return true
	})
	return taken, adjustments
}

func (s *Store) reconcileLocked(lookup func(id string) (entity.Product, bool)) []Adjustment {
	var adjustments []Adjustment
	kept := s.lines[:0]
	for _, line := range s.lines {
		current, ok := lookup(line.Product.ID)
		next := 0
		if ok {
			next = min(line.Quantity, current.Stock)
			line.Product = current
		}
		if next != line.Quantity {
			adjustments = append(adjustments, Adjustment{
				ProductID: line.Product.ID,
				Name:      line.Product.Name,
				Previous:  line.Quantity,
				Current:   max(next, 0),
			})
		}
		if next <= 0 {
			continue
		}
		line.Quantity = next
		kept = append(kept, line)
	}
	s.lines = kept
	return adjustments
}

// Total suma precio × cantidad de todas las líneas. 0 para un carrito vacío.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.lines)
}

// Count suma las unidades (no los productos distintos). 0 para un carrito vacío.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.lines)
}

// Lines copia de las líneas en orden de inserción.
func (s *Store) Lines() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.lines)
}

// Snapshot estado actual del carrito.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registra un listener propio de este carrito.
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// mutate aplica fn bajo el lock; si fn informa cambios persiste el carrito completo
// y, ya sin el lock, avisa a los listeners.
func (s *Store) mutate(ctx context.Context, fn func() bool) Snapshot {
	s.mu.Lock()
	changed := fn()
	if changed {
		s.persistLocked(ctx)
	}
	snap := s.snapshotLocked()
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if changed {
		for _, l := range listeners {
			l(snap)
		}
	}
	return snap
}

func (s *Store) persistLocked(ctx context.Context) {
	raw, err := encodeLines(s.lines)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", s.userID).Msg("carrito: serializar")
		return
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		s.log.Error().Err(err).Str("user_id", s.userID).Msg("carrito: persistir")
	}
}

// hydrate carga el carrito guardado. Contenido ilegible se trata como carrito vacío.
func (s *Store) hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", s.userID).Msg("carrito: no se pudo leer, se inicia vacío")
		return
	}
	if !ok || raw == "" {
		return
	}
	lines, err := decodeLines(raw)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", s.userID).Msg("carrito: contenido inválido, se inicia vacío")
		return
	}
	s.lines = sanitize(lines)
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		UserID: s.userID,
		Lines:  cloneLines(s.lines),
		Total:  total(s.lines),
		Count:  count(s.lines),
	}
}

func (s *Store) indexOf(productID string) int {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) removeAt(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// sanitize descarta líneas sin id o con cantidad no positiva, acota al stock y
// conserva la primera aparición de cada producto.
func sanitize(lines []entity.CartLine) []entity.CartLine {
	seen := make(map[string]struct{}, len(lines))
	out := make([]entity.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.Product.ID == "" {
			continue
		}
		if _, dup := seen[l.Product.ID]; dup {
			continue
		}
		q := min(l.Quantity, l.Product.Stock)
		if q <= 0 {
			continue
		}
		seen[l.Product.ID] = struct{}{}
		l.Quantity = q
		out = append(out, l)
	}
	return out
}

func total(lines []entity.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func count(lines []entity.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

func cloneLines(lines []entity.CartLine) []entity.CartLine {
	if len(lines) == 0 {
		return []entity.CartLine{}
	}
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out
}
