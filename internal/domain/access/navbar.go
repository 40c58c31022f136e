package access

// Link entrada del menú de navegación.
type Link struct {
	Label string `json:"label"`
	Path  string `json:"path"`
	Items []Link `json:"items,omitempty"`
}

// Navbar menú que corresponde a un rol.
type Navbar struct {
	Name  string `json:"name"`
	Links []Link `json:"links"`
	Cart  bool   `json:"cart"` // muestra el contador del carrito
}

var (
	linkInicio    = Link{Label: "Inicio", Path: "/"}
	linkProductos = Link{Label: "Productos", Path: "/productos"}
	linkContacto  = Link{Label: "Contacto", Path: "/contacto"}
	linkCarrito   = Link{Label: "Carrito", Path: "/carrito"}
	linkSalir     = Link{Label: "Cerrar sesión", Path: "/login"}

	linkGestionProductos = Link{Label: "Gestión", Path: "/admin/productos", Items: []Link{
		{Label: "Ver productos", Path: "/productos"},
		{Label: "Listado de productos", Path: "/admin/productos/list"},
		{Label: "Nuevo producto", Path: "/admin/productos/new"},
		{Label: "Nueva categoría", Path: "/admin/categorias/new"},
		{Label: "Nueva licencia", Path: "/admin/licencias/new"},
	}}
	linkUsuarios = Link{Label: "Usuarios", Path: "/admin/usuarios", Items: []Link{
		{Label: "Listado de usuarios", Path: "/admin/usuarios"},
		{Label: "Nuevo usuario", Path: "/admin/usuarios/new"},
	}}
)

// NavbarFor elige el menú según el rol. Un rol desconocido recibe el menú de invitado.
func NavbarFor(role Role) Navbar {
	switch role {
	case RoleAdmin:
		return Navbar{Name: "admin", Links: []Link{linkInicio, linkProductos, linkGestionProductos, linkUsuarios, linkSalir}}
	case RoleVendedor:
		return Navbar{Name: "vendedor", Links: []Link{linkInicio, linkProductos, linkGestionProductos, linkContacto, linkSalir}}
	case RoleComprador:
		return Navbar{Name: "comprador", Links: []Link{linkInicio, linkProductos, linkContacto, linkCarrito, linkSalir}, Cart: true}
	case RoleMixto:
		return Navbar{Name: "mixto", Links: []Link{linkInicio, linkProductos, linkContacto, linkGestionProductos, linkCarrito, linkSalir}, Cart: true}
	default:
		return Navbar{Name: "guest", Links: []Link{
			linkInicio,
			linkProductos,
			{Label: "Ayuda", Path: "/contacto", Items: []Link{
				{Label: "Contacto", Path: "/contacto"},
				{Label: "Preguntas frecuentes", Path: "/faqs"},
				{Label: "Sobre nosotros", Path: "/about"},
			}},
			{Label: "Ingresar", Path: "/login"},
		}}
	}
}
