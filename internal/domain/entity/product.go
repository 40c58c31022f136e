package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Product representa una figura del catálogo tal como la entrega el backend de catálogo.
// El stock es el disponible al momento de la última lectura del catálogo.
type Product struct {
	ID          string
	Name        string
	SKU         string // código único del producto
	Description string
	Price       decimal.Decimal // precio unitario, nunca negativo
	Stock       int
	Category    *Ref
	Licence     *Ref
	Discount    *decimal.Decimal // porcentaje 0–100
	Dues        *int             // cantidad de cuotas
	ImageFront  string
	ImageBack   string
}

// LicenceName devuelve el nombre de la licencia o "" si el producto no tiene.
func (p Product) LicenceName() string {
	if p.Licence == nil {
		return ""
	}
	return p.Licence.Name
}

// CategoryName devuelve el nombre de la categoría o "" si el producto no tiene.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// Normalize limpia los campos opcionales al ingresar al sistema:
// imágenes en blanco quedan vacías y los textos sin espacios sobrantes.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.SKU = strings.TrimSpace(p.SKU)
	p.Description = strings.TrimSpace(p.Description)
	p.ImageFront = strings.TrimSpace(p.ImageFront)
	p.ImageBack = strings.TrimSpace(p.ImageBack)
	if p.Stock < 0 {
		p.Stock = 0
	}
}
