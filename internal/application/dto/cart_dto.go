package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddCartItemRequest agrega unidades de un producto. Quantity 0 u omitido equivale a 1.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest fija la cantidad de una línea; 0 o negativo la quita.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse línea del carrito.
type CartLineResponse struct {
	Product  ProductResponse `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito completo.
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
	Count int                `json:"count"`
}

// CartCountResponse contador del carrito (badge del menú).
type CartCountResponse struct {
	Count int `json:"count"`
}

// CartAdjustmentResponse cambio aplicado a una línea al confirmar el carrito.
type CartAdjustmentResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"product_name"`
	Previous  int    `json:"previous"`
	Current   int    `json:"current"`
}

// StockChangedResponse respuesta del checkout cuando el stock cambió.
type StockChangedResponse struct {
	Code        string                   `json:"code"`
	Message     string                   `json:"message"`
	Adjustments []CartAdjustmentResponse `json:"adjustments"`
	Cart        CartResponse             `json:"cart"`
}

// ReceiptResponse comprobante de compra.
type ReceiptResponse struct {
	ID        string             `json:"receipt_id"`
	Items     []CartLineResponse `json:"items"`
	Total     decimal.Decimal    `json:"total"`
	Count     int                `json:"count"`
	CreatedAt time.Time          `json:"created_at"`
}
