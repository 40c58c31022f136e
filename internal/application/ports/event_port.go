package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys de los eventos que emite la tienda.
const (
	CartUpdatedRoutingKey    = "cart.updated.v1"
	CartCheckedOutRoutingKey = "cart.checkedout.v1"
)

// CartItemEvent línea del carrito dentro de un evento.
type CartItemEvent struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// CartUpdated se emite después de cada mutación del carrito. Es una señal:
// quien la consume debe releer el carrito en lugar de confiar en el contenido.
type CartUpdated struct {
	EventType string          `json:"eventType"`
	UserID    string          `json:"userId"`
	Count     int             `json:"count"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// CartCheckedOut se emite al generar un comprobante.
type CartCheckedOut struct {
	EventType   string          `json:"eventType"`
	ReceiptID   string          `json:"receiptId"`
	UserID      string          `json:"userId"`
	Items       []CartItemEvent `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamp   time.Time       `json:"timestamp"`
}

// EventPublisher puerto de salida para los eventos del carrito.
// Cualquier adaptador (RabbitMQ, log, no-op) debe implementar esta interfaz.
type EventPublisher interface {
	PublishCartUpdated(ctx context.Context, ev CartUpdated) error
	PublishCartCheckedOut(ctx context.Context, ev CartCheckedOut) error
}

// NopPublisher descarta los eventos; se usa cuando no hay broker configurado.
type NopPublisher struct{}

func (NopPublisher) PublishCartUpdated(context.Context, CartUpdated) error       { return nil }
func (NopPublisher) PublishCartCheckedOut(context.Context, CartCheckedOut) error { return nil }
