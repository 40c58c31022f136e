// Package access resuelve el rol de una sesión y decide si un rol puede
// acceder a una ruta protegida. No tiene efectos secundarios.
package access

import (
	"strings"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// Role rol efectivo de quien hace la petición.
type Role string

const (
	RoleGuest     Role = "guest"
	RoleAdmin     Role = entity.RoleAdmin
	RoleVendedor  Role = entity.RoleVendedor
	RoleComprador Role = entity.RoleComprador
	RoleMixto     Role = entity.RoleMixto
)

// ParseRole interpreta una etiqueta de rol. Acepta mayúsculas y espacios alrededor
// (el backend de cuentas envía role_name en cualquier formato). ok es false si la
// etiqueta no pertenece al conjunto cerrado de roles.
func ParseRole(tag string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(tag))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleVendedor:
		return RoleVendedor, true
	case RoleComprador:
		return RoleComprador, true
	case RoleMixto:
		return RoleMixto, true
	default:
		return RoleGuest, false
	}
}

// Resolve devuelve el rol de una sesión almacenada. Sin sesión el rol es guest;
// una etiqueta desconocida también resuelve a guest en lugar de fallar.
func Resolve(session *entity.Session) Role {
	if session == nil {
		return RoleGuest
	}
	role, _ := ParseRole(session.Role)
	return role
}

func (r Role) String() string { return string(r) }

// IsAuthenticated es falso solo para guest.
func (r Role) IsAuthenticated() bool { return r != RoleGuest && r != "" }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsVendedor incluye a mixto.
func (r Role) IsVendedor() bool { return r == RoleVendedor || r == RoleMixto }

// IsComprador incluye a mixto.
func (r Role) IsComprador() bool { return r == RoleComprador || r == RoleMixto }

func (r Role) IsMixto() bool { return r == RoleMixto }
