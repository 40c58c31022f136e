package entity

// Ref referencia a una licencia o categoría. El backend la envía de dos formas:
// como objeto con id y nombre, o solo como nombre. ID vacío indica la forma "solo nombre".
type Ref struct {
	ID   string
	Name string
}

// NameRef construye una referencia de solo nombre.
func NameRef(name string) *Ref {
	return &Ref{Name: name}
}

// IDRef construye una referencia completa (id + nombre).
func IDRef(id, name string) *Ref {
	return &Ref{ID: id, Name: name}
}

// HasID indica si la referencia trae identificador.
func (r Ref) HasID() bool {
	return r.ID != ""
}
