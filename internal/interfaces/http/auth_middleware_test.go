package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/access"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-Funkos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeSessions resuelve tokens fijos "tok-<rol>" a una sesión con ese rol.
type fakeSessions map[string]*entity.Session

func (f fakeSessions) Authenticate(_ context.Context, token string) (*entity.Session, error) {
	if token == "tok-sin-almacenamiento" {
		return nil, fmt.Errorf("%w: leer sesión: connection refused", domain.ErrUnavailable)
	}
	s, ok := f[token]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	return s, nil
}

func newFakeSessions() fakeSessions {
	f := fakeSessions{}
	for i, role := range []string{"admin", "vendedor", "comprador", "mixto", "desconocido"} {
		f["tok-"+role] = &entity.Session{
			ID:       "ses-" + role,
			UserID:   string(rune('1' + i)),
			Username: role,
			Role:     role,
		}
	}
	return f
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - SessionMiddleware para resolver el token y cargar locals
//   - RequireAccess para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(req access.Requirement) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.SessionMiddleware(newFakeSessions()),
		apphttp.RequireAccess(req),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c).String(),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenForRole devuelve el header Authorization de la sesión fija con ese rol.
func tokenForRole(role string) string {
	return "Bearer tok-" + role
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeRedirect(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAccess
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAccess_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(access.RequireAdmin())
	resp := doRequest(t, app, tokenForRole("admin"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, "1", body["user_id"])
}

func TestRequireAccess_MixtoAccedeRutaDeGestion(t *testing.T) {
	app := buildTestApp(access.RequireRoleIn(access.RoleAdmin, access.RoleVendedor, access.RoleMixto))
	resp := doRequest(t, app, tokenForRole("mixto"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAccess_MixtoAccedeRutaComprador(t *testing.T) {
	app := buildTestApp(access.RequireComprador())
	resp := doRequest(t, app, tokenForRole("mixto"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Rol fuera del conjunto → 403 y redirección a /productos.
func TestRequireAccess_CompradorEnRutaAdmin_RedirigeAProductos(t *testing.T) {
	app := buildTestApp(access.RequireAdmin())
	resp := doRequest(t, app, tokenForRole("comprador"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "/productos", resp.Header.Get("Location"))

	body := decodeRedirect(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "/productos", body["redirect"])
}

func TestRequireAccess_VendedorEnRutaComprador_RedirigeAProductos(t *testing.T) {
	app := buildTestApp(access.RequireComprador())
	resp := doRequest(t, app, tokenForRole("vendedor"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// Sin identidad → 401 y redirección a /login, aunque la ruta solo pida estar autenticado.
func TestRequireAccess_SinAuthHeader_RedirigeALogin(t *testing.T) {
	app := buildTestApp(access.Unconditional())
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHENTICATED")
}

func TestRequireAccess_TokenInvalido_EsVisitante(t *testing.T) {
	app := buildTestApp(access.RequireAdmin())
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAccess_FormatoDeHeaderInvalido_EsVisitante(t *testing.T) {
	app := buildTestApp(access.Unconditional())
	resp := doRequest(t, app, "tok-admin")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Una sesión con un rol que no se reconoce se trata como visitante.
func TestRequireAccess_RolDesconocido_RedirigeALogin(t *testing.T) {
	app := buildTestApp(access.Unconditional())
	resp := doRequest(t, app, tokenForRole("desconocido"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Si la sesión no se puede leer no se degrada a visitante: 503 sin redirección.
func TestSessionMiddleware_AlmacenamientoCaido_Retorna503(t *testing.T) {
	app := buildTestApp(access.Unconditional())
	resp := doRequest(t, app, "Bearer tok-sin-almacenamiento")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))

	body := decodeRedirect(t, resp)
	assert.Equal(t, "UNAVAILABLE", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware: rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_VisitanteEnRutaPublica(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.SessionMiddleware(newFakeSessions()), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"role":       apphttp.GetRole(c).String(),
			"authorized": apphttp.GetSession(c) != nil,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "guest", body["role"])
	assert.Equal(t, false, body["authorized"])
}
