package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// storedRef forma persistida de una licencia o categoría.
type storedRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// storedProduct foto del producto tal como se guarda junto a la línea.
type storedProduct struct {
	ID          string           `json:"product_id"`
	Name        string           `json:"product_name"`
	SKU         string           `json:"sku,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	Category    *storedRef       `json:"category,omitempty"`
	Licence     *storedRef       `json:"licence,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Dues        *int             `json:"dues,omitempty"`
	ImageFront  string           `json:"image_front,omitempty"`
	ImageBack   string           `json:"image_back,omitempty"`
}

type storedLine struct {
	Product  storedProduct `json:"product"`
	Quantity int           `json:"quantity"`
}

// encodeLines serializa el carrito completo como arreglo JSON en orden de inserción.
func encodeLines(lines []entity.CartLine) (string, error) {
	out := make([]storedLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, storedLine{Product: toStored(l.Product), Quantity: l.Quantity})
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("codificar carrito: %w", err)
	}
	return string(raw), nil
}

func decodeLines(raw string) ([]entity.CartLine, error) {
	var in []storedLine
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, fmt.Errorf("decodificar carrito: %w", err)
	}
	lines := make([]entity.CartLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.CartLine{Product: fromStored(l.Product), Quantity: l.Quantity})
	}
	return lines, nil
}

func toStored(p entity.Product) storedProduct {
	return storedProduct{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    refToStored(p.Category),
		Licence:     refToStored(p.Licence),
		Discount:    p.Discount,
		Dues:        p.Dues,
		ImageFront:  p.ImageFront,
		ImageBack:   p.ImageBack,
	}
}

func fromStored(p storedProduct) entity.Product {
	return entity.Product{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    refFromStored(p.Category),
		Licence:     refFromStored(p.Licence),
		Discount:    p.Discount,
		Dues:        p.Dues,
		ImageFront:  p.ImageFront,
		ImageBack:   p.ImageBack,
	}
}

func refToStored(r *entity.Ref) *storedRef {
	if r == nil {
		return nil
	}
	return &storedRef{ID: r.ID, Name: r.Name}
}

func refFromStored(r *storedRef) *entity.Ref {
	if r == nil {
		return nil
	}
	return &entity.Ref{ID: r.ID, Name: r.Name}
}
