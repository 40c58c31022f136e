package entity

// Licence franquicia temática a la que pertenece un producto (ej. "Star Wars").
type Licence struct {
	ID          string
	Name        string
	Description string
	Image       string
}
