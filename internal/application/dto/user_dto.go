package dto

// CreateUserRequest alta de una cuenta desde el panel de administración.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=16"`
	Lastname string `json:"lastname" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=32"`
	RoleID   *int   `json:"role_id"`
}

// UpdateUserRequest modificación de una cuenta. Password vacío conserva la actual.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"required,max=16"`
	Lastname string `json:"lastname" validate:"required,max=80"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,max=32"`
	RoleID   *int   `json:"role_id"`
}

// UserResponse salida de una cuenta (sin password).
type UserResponse struct {
	ID       string `json:"user_id"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	RoleID   *int   `json:"role_id,omitempty"`
	RoleName string `json:"role_name,omitempty"`
}

// RoleResponse rol asignable.
type RoleResponse struct {
	ID   int    `json:"role_id"`
	Name string `json:"role_name"`
}
