package repository

import (
	"context"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	// Create persiste la categoría y completa category.ID.
	Create(ctx context.Context, category *entity.Category) error
}
