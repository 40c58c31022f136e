package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/access"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// Locals keys para la sesión y el rol efectivo en Fiber.
const (
	LocalSession = "session"
	LocalRole    = "role"
)

// SessionAuthenticator resuelve la sesión referida por un token. Lo implementa auth.AuthUseCase.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
}

// SessionMiddleware lee el Bearer Token (si existe) y carga la sesión y el rol en c.Locals.
// Un token ausente, inválido o cuya sesión ya no existe deja al visitante como guest;
// la decisión de acceso la toma RequireAccess en cada ruta. Si la sesión no se pudo
// leer (almacenamiento caído) se responde el error en lugar de tratarlo como guest.
func SessionMiddleware(auth SessionAuthenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalRole, access.RoleGuest)
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			return c.Next()
		}
		session, err := auth.Authenticate(c.UserContext(), token)
		if err != nil && !errors.Is(err, domain.ErrSessionExpired) {
			return respondError(c, err, "")
		}
		if session == nil {
			return c.Next()
		}
		c.Locals(LocalSession, session)
		c.Locals(LocalRole, access.Resolve(session))
		return c.Next()
	}
}

// RequireAccess aplica la política de acceso de la ruta. Si se niega, responde con el
// destino de redirección en el header Location y en el cuerpo: 401 cuando falta la
// identidad (/login) y 403 cuando el rol no alcanza (/productos).
func RequireAccess(req access.Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		decision := access.Authorize(GetRole(c), req)
		if decision.Allowed {
			return c.Next()
		}
		c.Set(fiber.HeaderLocation, decision.Redirect)
		if decision.Redirect == access.RedirectLogin {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.RedirectResponse{
				Code:     "UNAUTHENTICATED",
				Message:  "debe iniciar sesión",
				Redirect: decision.Redirect,
			})
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.RedirectResponse{
			Code:     "FORBIDDEN",
			Message:  "su rol no tiene acceso a esta sección",
			Redirect: decision.Redirect,
		})
	}
}

// GetSession devuelve la sesión del contexto, o nil para un visitante.
func GetSession(c *fiber.Ctx) *entity.Session {
	s, _ := c.Locals(LocalSession).(*entity.Session)
	return s
}

// GetRole devuelve el rol efectivo del contexto (guest si no hay sesión).
func GetRole(c *fiber.Ctx) access.Role {
	r, ok := c.Locals(LocalRole).(access.Role)
	if !ok {
		return access.RoleGuest
	}
	return r
}

// GetUserID devuelve el UserID de la sesión del contexto.
func GetUserID(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return ""
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
