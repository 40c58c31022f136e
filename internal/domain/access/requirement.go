package access

// Destinos de redirección cuando se niega el acceso.
const (
	RedirectLogin     = "/login"
	RedirectProductos = "/productos"
)

// Requirement condición de acceso de una ruta. El valor cero permite a cualquier
// identidad autenticada. Las restricciones se combinan con And (ambas deben cumplirse).
type Requirement struct {
	admin bool
	roles []Role // nil = sin restricción por conjunto
}

// Unconditional solo exige una identidad.
func Unconditional() Requirement { return Requirement{} }

// RequireAdmin exige el rol admin.
func RequireAdmin() Requirement { return Requirement{admin: true} }

// RequireRoleIn exige que el rol pertenezca al conjunto dado.
func RequireRoleIn(roles ...Role) Requirement {
	set := make([]Role, len(roles))
	copy(set, roles)
	return Requirement{roles: set}
}

// RequireVendedor equivale a RequireRoleIn(vendedor, mixto).
func RequireVendedor() Requirement { return RequireRoleIn(RoleVendedor, RoleMixto) }

// RequireComprador equivale a RequireRoleIn(comprador, mixto).
func RequireComprador() Requirement { return RequireRoleIn(RoleComprador, RoleMixto) }

// And combina dos requisitos; el resultado exige ambos.
// Dos conjuntos de roles se intersectan.
func (r Requirement) And(other Requirement) Requirement {
	out := Requirement{admin: r.admin || other.admin}
	switch {
	case r.roles == nil:
		out.roles = other.roles
	case other.roles == nil:
		out.roles = r.roles
	default:
		out.roles = []Role{}
		for _, a := range r.roles {
			if other.allows(a) {
				out.roles = append(out.roles, a)
			}
		}
	}
	return out
}

// RequiresAdmin indica si el requisito exige admin.
func (r Requirement) RequiresAdmin() bool { return r.admin }

// Roles devuelve el conjunto permitido, o nil si no hay restricción por conjunto.
func (r Requirement) Roles() []Role {
	if r.roles == nil {
		return nil
	}
	out := make([]Role, len(r.roles))
	copy(out, r.roles)
	return out
}

func (r Requirement) allows(role Role) bool {
	for _, allowed := range r.roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Decision resultado de Authorize. Si Allowed es falso, Redirect indica el destino.
type Decision struct {
	Allowed  bool
	Redirect string
}

// Allow decisión afirmativa.
func Allow() Decision { return Decision{Allowed: true} }

// DenyRedirect decisión negativa con destino.
func DenyRedirect(target string) Decision { return Decision{Redirect: target} }

// Authorize decide el acceso evaluando en orden (gana la primera regla que aplica):
//  1. sin identidad → /login
//  2. conjunto de roles presente y rol fuera del conjunto → /productos
//  3. admin requerido y rol distinto de admin → /productos
//  4. permitido
func Authorize(role Role, req Requirement) Decision {
	if !role.IsAuthenticated() {
		return DenyRedirect(RedirectLogin)
	}
	if req.roles != nil && !req.allows(role) {
		return DenyRedirect(RedirectProductos)
	}
	if req.admin && !role.IsAdmin() {
		return DenyRedirect(RedirectProductos)
	}
	return Allow()
}
