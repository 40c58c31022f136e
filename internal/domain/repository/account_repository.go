package repository

import "context"

// Account identidad devuelta por el servicio de autenticación.
type Account struct {
	UserID   string
	Name     string
	Lastname string
	Email    string
	RoleName string
	RoleID   int
}

// Registration datos de alta de una cuenta nueva.
type Registration struct {
	Name     string
	Lastname string
	Email    string
	Password string
	RoleName string
	RoleID   int
}

// AccountGateway define el puerto hacia el servicio REST de autenticación.
// Si el servicio no responde retorna un error que cumple errors.Is(err, domain.ErrUnavailable);
// si rechaza la operación, un *domain.BackendError con su mensaje.
type AccountGateway interface {
	Login(ctx context.Context, email, password string) (*Account, error)
	Register(ctx context.Context, reg Registration) (*Account, error)
}

