package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/auth"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/cart"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
)

// AuthHandler maneja registro, login, logout y el estado de la sesión.
type AuthHandler struct {
	uc   *auth.AuthUseCase
	cart *cart.Service
}

// NewAuthHandler construye el handler de auth. cartSvc se usa para el contador del menú
// y para liberar el carrito en memoria al cerrar sesión.
func NewAuthHandler(uc *auth.AuthUseCase, cartSvc *cart.Service) *AuthHandler {
	return &AuthHandler{uc: uc, cart: cartSvc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email, password"
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USER_EXISTS", Message: "el usuario ya está registrado"})
		}
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "usuario o email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Security     Bearer
// @Success      204
// @Failure      401   {object}  dto.RedirectResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session := GetSession(c)
	if session == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err := h.uc.Logout(c.UserContext(), session.ID); err != nil {
		return respondError(c, err, "")
	}
	if h.cart != nil {
		h.cart.Forget(session.UserID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session godoc
// @Summary      Estado de la sesión y menú de navegación
// @Description  Rol efectivo, permisos derivados y menú. Un visitante recibe el menú de invitado.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/sesion [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session := GetSession(c)
	count := 0
	if session != nil && GetRole(c).IsComprador() && h.cart != nil {
		count = h.cart.Count(c.UserContext(), session.UserID)
	}
	return c.JSON(auth.SessionView(session, count))
}
