package entity

// Category agrupa productos (ej. "Funko Pop", "Llaveros").
type Category struct {
	ID          string
	Name        string
	Description string
	Image       string
}
