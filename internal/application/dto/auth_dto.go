package dto

import "time"

// LoginRequest entrada para login. Username acepta nombre de usuario o email.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest entrada para registro. Name y Lastname se derivan de Username si faltan.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=32"`
	Name     string `json:"name" validate:"omitempty,max=16"`
	Lastname string `json:"lastname" validate:"omitempty,max=80"`
}

// SessionUserResponse identidad de la sesión.
type SessionUserResponse struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Lastname string `json:"lastname,omitempty"`
	Role     string `json:"role"`
	RoleID   int    `json:"role_id,omitempty"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expires_at"`
	User      SessionUserResponse `json:"user"`
}

// NavLinkResponse entrada del menú.
type NavLinkResponse struct {
	Label string            `json:"label"`
	Path  string            `json:"path"`
	Items []NavLinkResponse `json:"items,omitempty"`
}

// SessionResponse estado de la sesión actual: rol efectivo, permisos derivados y menú.
type SessionResponse struct {
	Authenticated bool                 `json:"authenticated"`
	Role          string               `json:"role"`
	IsAdmin       bool                 `json:"is_admin"`
	IsVendedor    bool                 `json:"is_vendedor"`
	IsComprador   bool                 `json:"is_comprador"`
	IsMixto       bool                 `json:"is_mixto"`
	User          *SessionUserResponse `json:"user,omitempty"`
	Navbar        string               `json:"navbar"`
	Links         []NavLinkResponse    `json:"links"`
	CartCount     int                  `json:"cart_count"`
}

// RedirectResponse respuesta de una ruta denegada por la política de acceso.
type RedirectResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
