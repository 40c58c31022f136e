package dto

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"category_name" validate:"required,max=100"`
	Description string `json:"category_description"`
	Image       string `json:"category_image"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"category_id"`
	Name        string `json:"category_name"`
	Description string `json:"category_description,omitempty"`
	Image       string `json:"category_image,omitempty"`
}

// CreateLicenceRequest entrada para crear una licencia.
type CreateLicenceRequest struct {
	Name        string `json:"licence_name" validate:"required,max=100"`
	Description string `json:"licence_description"`
	Image       string `json:"licence_image"`
}

// LicenceResponse salida de una licencia.
type LicenceResponse struct {
	ID          string `json:"licence_id"`
	Name        string `json:"licence_name"`
	Description string `json:"licence_description,omitempty"`
	Image       string `json:"licence_image,omitempty"`
}
