package dto

import (
	"github.com/shopspring/decimal"
)

// RefResponse licencia o categoría asociada a un producto.
type RefResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// CreateProductRequest entrada para crear un producto.
// Categoría y licencia se indican por nombre, como las recibe el backend de catálogo.
type CreateProductRequest struct {
	Name         string           `json:"product_name" validate:"required,min=1,max=200"`
	SKU          string           `json:"sku" validate:"required,min=1,max=100"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	Stock        int              `json:"stock" validate:"min=0"`
	CategoryName string           `json:"category_name"`
	LicenceName  string           `json:"licence_name"`
	Discount     *decimal.Decimal `json:"discount"`
	Dues         *int             `json:"dues"`
	ImageFront   string           `json:"image_front"`
	ImageBack    string           `json:"image_back"`
}

// UpdateProductRequest entrada para actualizar un producto. Los campos nulos se conservan.
type UpdateProductRequest struct {
	Name         *string          `json:"product_name" validate:"omitempty,min=1,max=200"`
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Stock        *int             `json:"stock" validate:"omitempty,min=0"`
	CategoryName *string          `json:"category_name"`
	LicenceName  *string          `json:"licence_name"`
	Discount     *decimal.Decimal `json:"discount"`
	Dues         *int             `json:"dues"`
	ImageFront   *string          `json:"image_front"`
	ImageBack    *string          `json:"image_back"`
}

// ProductFilter filtros del listado público.
type ProductFilter struct {
	PageRequest
	Query    string `query:"q"`
	Licence  string `query:"licencia"`
	Category string `query:"categoria"`
}

// ProductResponse salida de un producto. ImageURL es la ruta pública ya normalizada.
type ProductResponse struct {
	ID          string           `json:"product_id"`
	Name        string           `json:"product_name"`
	SKU         string           `json:"sku"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	Category    *RefResponse     `json:"category,omitempty"`
	Licence     *RefResponse     `json:"licence,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Dues        *int             `json:"dues,omitempty"`
	ImageFront  string           `json:"image_front,omitempty"`
	ImageBack   string           `json:"image_back,omitempty"`
	ImageURL    string           `json:"image_url"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CatalogStatusResponse estado de la caché del catálogo.
type CatalogStatusResponse struct {
	Products int    `json:"products"`
	Error    string `json:"error,omitempty"`
}
