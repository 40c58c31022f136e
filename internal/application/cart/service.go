package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/ports"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

// ProductLookup consulta el catálogo vigente. La implementa catalog.Cache.
type ProductLookup interface {
	GetByID(id string) (entity.Product, bool)
}

// Buyer identidad dueña del carrito.
type Buyer struct {
	UserID   string
	Username string
}

// StockChangedError acompaña a domain.ErrStockChanged con los cambios aplicados al carrito.
type StockChangedError struct {
	Adjustments []Adjustment
}

func (e *StockChangedError) Error() string {
	return fmt.Sprintf("%s (%d producto(s) ajustados)", domain.ErrStockChanged.Error(), len(e.Adjustments))
}

// Is permite comparar contra domain.ErrStockChanged.
func (e *StockChangedError) Is(target error) bool {
	return target == domain.ErrStockChanged
}

// Service casos de uso del carrito: operaciones sobre líneas, checkout y comprobantes.
type Service struct {
	manager   *Manager
	catalog   ProductLookup
	kv        repository.KeyValueStore
	publisher ports.EventPublisher
	pdf       ports.ReceiptPDFGenerator
	log       *logger.Logger
	now       func() time.Time
}

// NewService construye el caso de uso inyectando sus dependencias.
// publisher nil equivale a ports.NopPublisher.
func NewService(
	manager *Manager,
	catalog ProductLookup,
	kv repository.KeyValueStore,
	publisher ports.EventPublisher,
	pdf ports.ReceiptPDFGenerator,
	log *logger.Logger,
) *Service {
	if publisher == nil {
		publisher = ports.NopPublisher{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		manager:   manager,
		catalog:   catalog,
		kv:        kv,
		publisher: publisher,
		pdf:       pdf,
		log:       log.Component("checkout"),
		now:       time.Now,
	}
}

// Get devuelve el carrito del usuario.
func (s *Service) Get(ctx context.Context, userID string) Snapshot {
	return s.manager.Open(ctx, userID).Snapshot()
}

// Count unidades en el carrito del usuario.
func (s *Service) Count(ctx context.Context, userID string) int {
	return s.manager.Open(ctx, userID).Count()
}

// AddItem agrega qty unidades de un producto del catálogo.
func (s *Service) AddItem(ctx context.Context, userID, productID string, qty int) (Snapshot, error) {
	if qty <= 0 {
		return Snapshot{}, domain.Invalid("quantity", "la cantidad debe ser mayor a cero")
	}
	product, ok := s.catalog.GetByID(productID)
	if !ok {
		return Snapshot{}, domain.ErrNotFound
	}
	if product.Stock <= 0 {
		return Snapshot{}, domain.Invalid("quantity", "producto sin stock")
	}
	return s.manager.Open(ctx, userID).AddToCart(ctx, product, qty), nil
}

// UpdateItem fija la cantidad de una línea; qty <= 0 la quita.
func (s *Service) UpdateItem(ctx context.Context, userID, productID string, qty int) Snapshot {
	return s.manager.Open(ctx, userID).UpdateQuantity(ctx, productID, qty)
}

// RemoveItem quita una línea.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) Snapshot {
	return s.manager.Open(ctx, userID).RemoveFromCart(ctx, productID)
}

// Clear vacía el carrito.
func (s *Service) Clear(ctx context.Context, userID string) Snapshot {
	return s.manager.Open(ctx, userID).ClearCart(ctx)
}

// Forget libera el carrito en memoria del usuario al cerrar sesión.
func (s *Service) Forget(userID string) {
	s.manager.Forget(userID)
}

// Checkout confirma el carrito contra el catálogo vigente. Si alguna línea cambió
// (stock menor, producto eliminado) el carrito queda ajustado y se retorna
// *StockChangedError para que el comprador revise. Si no, genera el comprobante,
// lo guarda, publica cart.checkedout.v1 y vacía el carrito.
func (s *Service) Checkout(ctx context.Context, buyer Buyer) (*entity.Receipt, error) {
	store := s.manager.Open(ctx, buyer.UserID)
	if store.Count() == 0 {
		return nil, domain.ErrCartEmpty
	}

	lines, adjustments := store.checkout(ctx, s.catalog.GetByID)
	if len(adjustments) > 0 {
		return nil, &StockChangedError{Adjustments: adjustments}
	}
	if len(lines) == 0 {
		return nil, domain.ErrCartEmpty
	}

	receipt := &entity.Receipt{
		ID:        uuid.New().String(),
		UserID:    buyer.UserID,
		Username:  buyer.Username,
		Lines:     lines,
		Total:     total(lines),
		Count:     count(lines),
		CreatedAt: s.now().UTC(),
	}
	if err := s.saveReceipt(ctx, receipt); err != nil {
		// el carrito ya se vació; se restauran las líneas para no perder la compra
		for _, l := range lines {
			store.AddToCart(ctx, l.Product, l.Quantity)
		}
		return nil, err
	}

	if err := s.publisher.PublishCartCheckedOut(ctx, checkedOutEvent(receipt)); err != nil {
		s.log.Error().Err(err).Str("receipt_id", receipt.ID).Msg("publicar cart.checkedout")
	}
	s.log.Info().Str("receipt_id", receipt.ID).Str("user_id", buyer.UserID).
		Int("count", receipt.Count).Str("total", receipt.Total.String()).Msg("checkout")
	return receipt, nil
}

// Receipt recupera un comprobante del usuario. Un comprobante ajeno se informa como inexistente.
func (s *Service) Receipt(ctx context.Context, userID, receiptID string) (*entity.Receipt, error) {
	raw, ok, err := s.kv.Get(ctx, receiptKey(receiptID))
	if err != nil {
		return nil, fmt.Errorf("leer comprobante: %w", err)
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	var stored storedReceipt
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decodificar comprobante: %w", err)
	}
	if stored.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return stored.toEntity(), nil
}

// ReceiptPDF genera el PDF de un comprobante del usuario.
func (s *Service) ReceiptPDF(ctx context.Context, userID, receiptID string) ([]byte, error) {
	receipt, err := s.Receipt(ctx, userID, receiptID)
	if err != nil {
		return nil, err
	}
	if s.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado: %w", domain.ErrUnavailable)
	}
	return s.pdf.GenerateReceiptPDF(ctx, receipt)
}

func (s *Service) saveReceipt(ctx context.Context, receipt *entity.Receipt) error {
	raw, err := json.Marshal(receiptToStored(receipt))
	if err != nil {
		return fmt.Errorf("codificar comprobante: %w", err)
	}
	if err := s.kv.Set(ctx, receiptKey(receipt.ID), string(raw)); err != nil {
		return fmt.Errorf("guardar comprobante: %w", err)
	}
	return nil
}

func receiptKey(id string) string {
	return "comprobante:" + id
}

func checkedOutEvent(r *entity.Receipt) ports.CartCheckedOut {
	ev := ports.CartCheckedOut{
		EventType:   ports.CartCheckedOutRoutingKey,
		ReceiptID:   r.ID,
		UserID:      r.UserID,
		TotalAmount: r.Total,
		Timestamp:   r.CreatedAt,
	}
	for _, l := range r.Lines {
		ev.Items = append(ev.Items, ports.CartItemEvent{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}
	return ev
}

type storedReceipt struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	Lines     []storedLine    `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
	CreatedAt time.Time       `json:"created_at"`
}

func receiptToStored(r *entity.Receipt) storedReceipt {
	out := storedReceipt{
		ID:        r.ID,
		UserID:    r.UserID,
		Username:  r.Username,
		Total:     r.Total,
		Count:     r.Count,
		CreatedAt: r.CreatedAt,
	}
	for _, l := range r.Lines {
		out.Lines = append(out.Lines, storedLine{Product: toStored(l.Product), Quantity: l.Quantity})
	}
	return out
}

func (s storedReceipt) toEntity() *entity.Receipt {
	r := &entity.Receipt{
		ID:        s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
		Total:     s.Total,
		Count:     s.Count,
		CreatedAt: s.CreatedAt,
	}
	for _, l := range s.Lines {
		r.Lines = append(r.Lines, entity.CartLine{Product: fromStored(l.Product), Quantity: l.Quantity})
	}
	return r
}
