package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt comprobante generado al confirmar un carrito. No implica un pago.
type Receipt struct {
	ID        string
	UserID    string
	Username  string
	Lines     []CartLine
	Total     decimal.Decimal
	Count     int
	CreatedAt time.Time
}
