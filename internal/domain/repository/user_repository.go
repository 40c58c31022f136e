package repository

import (
	"context"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// UserRepository define el puerto de administración de cuentas del backend (DIP).
type UserRepository interface {
	List(ctx context.Context) ([]*entity.User, error)
	Roles(ctx context.Context) ([]entity.UserRole, error)
	// Create da de alta la cuenta y completa user.ID cuando el backend lo informa.
	Create(ctx context.Context, user *entity.User, password string) error
	// Update modifica la cuenta; password vacío conserva la contraseña actual.
	Update(ctx context.Context, user *entity.User, password string) error
	Delete(ctx context.Context, id string) error
}
