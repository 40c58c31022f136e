package repository

import (
	"context"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// ProductRepository define el puerto del catálogo de productos (DIP).
// Lo implementan el cliente REST del backend y el repositorio PostgreSQL.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	// GetByID retorna (nil, nil) si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// Create persiste el producto y completa product.ID.
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
