package auth

import (
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/access"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// SessionView estado público de la sesión (nil = visitante) con su menú.
// cartCount solo se informa cuando el menú muestra el carrito.
func SessionView(s *entity.Session, cartCount int) dto.SessionResponse {
	role := access.Resolve(s)
	nav := access.NavbarFor(role)
	out := dto.SessionResponse{
		Authenticated: role.IsAuthenticated(),
		Role:          role.String(),
		IsAdmin:       role.IsAdmin(),
		IsVendedor:    role.IsVendedor(),
		IsComprador:   role.IsComprador(),
		IsMixto:       role.IsMixto(),
		Navbar:        nav.Name,
		Links:         toLinks(nav.Links),
	}
	if s != nil && out.Authenticated {
		u := ToSessionUser(s)
		out.User = &u
	}
	if nav.Cart {
		out.CartCount = cartCount
	}
	return out
}

func toLinks(in []access.Link) []dto.NavLinkResponse {
	out := make([]dto.NavLinkResponse, 0, len(in))
	for _, l := range in {
		out = append(out, dto.NavLinkResponse{Label: l.Label, Path: l.Path, Items: toLinks(l.Items)})
	}
	return out
}
