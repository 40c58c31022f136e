package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/media"
)

// NewProductResponse arma la salida de un producto con su imagen normalizada.
func NewProductResponse(p entity.Product, images *media.Resolver) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    refResponse(p.Category),
		Licence:     refResponse(p.Licence),
		Discount:    p.Discount,
		Dues:        p.Dues,
		ImageFront:  p.ImageFront,
		ImageBack:   p.ImageBack,
		ImageURL:    images.ImageURL(p.ImageFront, p.LicenceName(), p.Name),
	}
}

// NewCartResponse arma la salida del carrito.
func NewCartResponse(lines []entity.CartLine, total decimal.Decimal, count int, images *media.Resolver) CartResponse {
	return CartResponse{
		Items: cartLines(lines, images),
		Total: total,
		Count: count,
	}
}

// NewReceiptResponse arma la salida de un comprobante.
func NewReceiptResponse(id string, lines []entity.CartLine, total decimal.Decimal, count int, createdAt time.Time, images *media.Resolver) ReceiptResponse {
	return ReceiptResponse{
		ID:        id,
		Items:     cartLines(lines, images),
		Total:     total,
		Count:     count,
		CreatedAt: createdAt,
	}
}

func cartLines(lines []entity.CartLine, images *media.Resolver) []CartLineResponse {
	items := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, CartLineResponse{
			Product:  NewProductResponse(l.Product, images),
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	return items
}

func refResponse(r *entity.Ref) *RefResponse {
	if r == nil {
		return nil
	}
	return &RefResponse{ID: r.ID, Name: r.Name}
}
