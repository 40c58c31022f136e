package entity

// Roles válidos para una cuenta.
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"
	RoleComprador = "comprador"
	RoleMixto     = "mixto"
)

// RoleIDMixto es el role_id que el backend asigna a las cuentas nuevas.
const RoleIDMixto = 4

// User cuenta administrada desde el panel de usuarios (vive en el backend de cuentas).
type User struct {
	ID       string
	Name     string
	Lastname string
	Email    string
	RoleID   *int
	RoleName string // vacío si la cuenta no tiene rol
}

// UserRole rol asignable desde el panel de usuarios.
type UserRole struct {
	ID   int
	Name string
}
