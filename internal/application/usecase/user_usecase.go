package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para la administración de cuentas.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todas las cuentas.
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene una cuenta por ID. Retorna (nil, nil) si no existe.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return entityToUserResponse(u), nil
		}
	}
	return nil, nil
}

// Roles devuelve los roles asignables.
func (uc *UserUseCase) Roles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.repo.Roles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.RoleResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// Create da de alta una cuenta. El password es obligatorio.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	u := &entity.User{
		Name:     strings.TrimSpace(in.Name),
		Lastname: strings.TrimSpace(in.Lastname),
		Email:    strings.TrimSpace(in.Email),
		RoleID:   in.RoleID,
	}
	if err := validateUser(u, in.Password, true); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u, in.Password); err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// Update modifica una cuenta. Un password vacío conserva el actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.Invalid("user_id", "el id es requerido")
	}
	u := &entity.User{
		ID:       id,
		Name:     strings.TrimSpace(in.Name),
		Lastname: strings.TrimSpace(in.Lastname),
		Email:    strings.TrimSpace(in.Email),
		RoleID:   in.RoleID,
	}
	if err := validateUser(u, in.Password, false); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, u, in.Password); err != nil {
		return nil, err
	}
	return entityToUserResponse(u), nil
}

// Delete elimina una cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.Invalid("user_id", "el id es requerido")
	}
	return uc.repo.Delete(ctx, id)
}

func validateUser(u *entity.User, password string, passwordRequired bool) error {
	switch {
	case u.Name == "":
		return domain.Invalid("name", "el nombre es requerido")
	case utf8.RuneCountInString(u.Name) > 16:
		return domain.Invalid("name", "El nombre debe tener máximo 16 caracteres")
	case u.Lastname == "":
		return domain.Invalid("lastname", "el apellido es requerido")
	case utf8.RuneCountInString(u.Lastname) > 80:
		return domain.Invalid("lastname", "El apellido debe tener máximo 80 caracteres")
	case u.Email == "" || !strings.Contains(u.Email, "@"):
		return domain.Invalid("email", "el email no es válido")
	case utf8.RuneCountInString(u.Email) > 255:
		return domain.Invalid("email", "El email debe tener máximo 255 caracteres")
	case passwordRequired && password == "":
		return domain.Invalid("password", "la contraseña es requerida")
	case utf8.RuneCountInString(password) > 32:
		return domain.Invalid("password", "La contraseña debe tener máximo 32 caracteres")
	case u.RoleID != nil && *u.RoleID <= 0:
		return domain.Invalid("role_id", "el rol no es válido")
	}
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Lastname: u.Lastname,
		Email:    u.Email,
		RoleID:   u.RoleID,
		RoleName: u.RoleName,
	}
}
