package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrDuplicate      = errors.New("recurso duplicado")
	ErrUnauthorized   = errors.New("no autorizado")
	ErrForbidden      = errors.New("acceso denegado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrUnavailable    = errors.New("servicio externo no disponible")
	ErrBackend        = errors.New("el servicio externo rechazó la operación")
	ErrCartEmpty      = errors.New("el carrito está vacío")
	ErrStockChanged   = errors.New("el stock de uno o más productos cambió")
	ErrSessionExpired = errors.New("sesión inexistente o expirada")
)

// ValidationError describe una entrada inválida con un mensaje apto para el usuario.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is permite comparar contra ErrInvalidInput.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// BackendError conserva el mensaje devuelto por el servicio externo.
// errors.Is(err, ErrBackend) es verdadero.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// Is permite comparar contra ErrBackend.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
