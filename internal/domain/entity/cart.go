package entity

import "github.com/shopspring/decimal"

// CartLine un producto del carrito junto con la cantidad pedida.
// Product es la foto del producto al momento de agregarlo; Quantity cumple 0 < Quantity <= Product.Stock.
type CartLine struct {
	Product  Product
	Quantity int
}

// Subtotal precio unitario por cantidad.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
