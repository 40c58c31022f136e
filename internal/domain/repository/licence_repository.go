package repository

import (
	"context"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// LicenceRepository define el puerto de persistencia para Licence (DIP).
type LicenceRepository interface {
	List(ctx context.Context) ([]*entity.Licence, error)
	// Create persiste la licencia y completa licence.ID.
	Create(ctx context.Context, licence *entity.Licence) error
}
