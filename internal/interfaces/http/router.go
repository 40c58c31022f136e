package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/auth"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/cart"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-Funkos-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	CatalogUC *catalog.UseCase
	CartSvc   *cart.Service
	UserUC    *usecase.UserUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", SessionMiddleware(deps.AuthUC))

	// Auth y sesión
	authHandler := NewAuthHandler(deps.AuthUC, deps.CartSvc)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", RequireAccess(access.Unconditional()), authHandler.Logout)
	api.Get("/sesion", authHandler.Session)

	// Catálogo (público)
	productHandler := NewProductHandler(deps.CatalogUC)
	api.Get("/productos", productHandler.List)
	api.Get("/productos/:id", productHandler.GetByID)
	api.Get("/categorias", productHandler.Categories)
	api.Get("/licencias", productHandler.Licences)

	// Carrito (comprador o mixto)
	cartHandler := NewCartHandler(deps.CartSvc, deps.CatalogUC.Images())
	carrito := api.Group("/carrito", RequireAccess(access.RequireComprador()))
	carrito.Get("/", cartHandler.Get)
	carrito.Delete("/", cartHandler.Clear)
	carrito.Get("/contador", cartHandler.Count)
	carrito.Post("/items", cartHandler.AddItem)
	carrito.Put("/items/:id", cartHandler.UpdateItem)
	carrito.Delete("/items/:id", cartHandler.RemoveItem)
	carrito.Post("/checkout", cartHandler.Checkout)
	carrito.Get("/comprobantes/:id", cartHandler.Receipt)
	carrito.Get("/comprobantes/:id/pdf", cartHandler.ReceiptPDF)

	// Gestión del catálogo (admin, vendedor o mixto)
	gestion := api.Group("/admin", RequireAccess(access.RequireRoleIn(access.RoleAdmin, access.RoleVendedor, access.RoleMixto)))
	gestion.Get("/productos", productHandler.List)
	gestion.Post("/productos", productHandler.Create)
	gestion.Get("/productos/:id", productHandler.GetByID)
	gestion.Put("/productos/:id", productHandler.Update)
	gestion.Delete("/productos/:id", productHandler.Delete)
	gestion.Post("/categorias", productHandler.CreateCategory)
	gestion.Post("/licencias", productHandler.CreateLicence)
	gestion.Post("/catalogo/refrescar", productHandler.Refresh)

	// Usuarios (solo admin; el requisito se suma al del grupo /admin)
	userHandler := NewUserHandler(deps.UserUC)
	usuarios := gestion.Group("/usuarios", RequireAccess(access.RequireAdmin()))
	usuarios.Get("/", userHandler.List)
	usuarios.Post("/", userHandler.Create)
	usuarios.Get("/roles", userHandler.Roles)
	usuarios.Put("/:id", userHandler.Update)
	usuarios.Delete("/:id", userHandler.Delete)
}
