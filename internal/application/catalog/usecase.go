package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/dto"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/media"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// UseCase casos de uso del catálogo. Las lecturas públicas salen de la caché;
// cada alta, modificación o baja se envía al backend y luego refresca la caché.
type UseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	licences   repository.LicenceRepository
	cache      *Cache
	images     *media.Resolver
	log        *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	licences repository.LicenceRepository,
	cache *Cache,
	images *media.Resolver,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	if images == nil {
		images = media.NewResolver("")
	}
	return &UseCase{
		products:   products,
		categories: categories,
		licences:   licences,
		cache:      cache,
		images:     images,
		log:        log.Component("catalog"),
	}
}

// Images resolver de imágenes configurado.
func (uc *UseCase) Images() *media.Resolver { return uc.images }

// List lista los productos de la caché aplicando filtros y paginación.
// Si el último refresco falló retorna un error que cumple errors.Is(err, domain.ErrUnavailable).
func (uc *UseCase) List(f dto.ProductFilter) (*dto.ProductListResponse, error) {
	if err := uc.cache.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	f.DefaultPage()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	var matched []entity.Product
	for _, p := range uc.cache.Products() {
		if f.Licence != "" && !strings.EqualFold(p.LicenceName(), f.Licence) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.CategoryName(), f.Category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	start := min(f.Offset, total)
	end := min(start+f.Limit, total)
	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range matched[start:end] {
		items = append(items, dto.NewProductResponse(p, uc.images))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}, nil
}

// GetByID obtiene un producto de la caché. Retorna (nil, nil) si no existe.
func (uc *UseCase) GetByID(id string) (*dto.ProductResponse, error) {
	p, ok := uc.cache.GetByID(id)
	if !ok {
		return nil, nil
	}
	out := dto.NewProductResponse(p, uc.images)
	return &out, nil
}

// Refresh fuerza la lectura del catálogo y devuelve el estado resultante.
func (uc *UseCase) Refresh(ctx context.Context) (*dto.CatalogStatusResponse, error) {
	err := uc.cache.Refresh(ctx)
	status := &dto.CatalogStatusResponse{Products: len(uc.cache.Products())}
	if err != nil {
		status.Error = err.Error()
		return status, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return status, nil
}

// Create crea un producto en el backend de catálogo.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := &entity.Product{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    nameRef(in.CategoryName),
		Licence:     nameRef(in.LicenceName),
		Discount:    in.Discount,
		Dues:        in.Dues,
		ImageFront:  in.ImageFront,
		ImageBack:   in.ImageBack,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.Normalize()
	if err := uc.products.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.refreshAfterMutation(ctx)
	out := dto.NewProductResponse(*product, uc.images)
	return &out, nil
}

// Update actualiza un producto. Retorna (nil, nil) si no existe.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.CategoryName != nil {
		product.Category = nameRef(*in.CategoryName)
	}
	if in.LicenceName != nil {
		product.Licence = nameRef(*in.LicenceName)
	}
	if in.Discount != nil {
		product.Discount = in.Discount
	}
	if in.Dues != nil {
		product.Dues = in.Dues
	}
	if in.ImageFront != nil {
		product.ImageFront = *in.ImageFront
	}
	if in.ImageBack != nil {
		product.ImageBack = *in.ImageBack
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	product.Normalize()
	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.refreshAfterMutation(ctx)
	out := dto.NewProductResponse(*product, uc.images)
	return &out, nil
}

// Delete elimina un producto por ID.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	uc.refreshAfterMutation(ctx)
	return nil
}

// Categories lista las categorías del backend.
func (uc *UseCase) Categories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// CreateCategory crea una categoría.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
	}
	if err := validateName("category_name", c.Name); err != nil {
		return nil, err
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// Licences lista las licencias del backend.
func (uc *UseCase) Licences(ctx context.Context) ([]dto.LicenceResponse, error) {
	list, err := uc.licences.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LicenceResponse, 0, len(list))
	for _, l := range list {
		out = append(out, toLicenceResponse(l))
	}
	return out, nil
}

// CreateLicence crea una licencia.
func (uc *UseCase) CreateLicence(ctx context.Context, in dto.CreateLicenceRequest) (*dto.LicenceResponse, error) {
	l := &entity.Licence{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
	}
	if err := validateName("licence_name", l.Name); err != nil {
		return nil, err
	}
	if err := uc.licences.Create(ctx, l); err != nil {
		return nil, err
	}
	out := toLicenceResponse(l)
	return &out, nil
}

// refreshAfterMutation relee el catálogo; un fallo queda registrado en la caché
// y no revierte la mutación ya aceptada por el backend.
func (uc *UseCase) refreshAfterMutation(ctx context.Context) {
	if err := uc.cache.Refresh(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("refresco tras mutación")
	}
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Category == nil:
		return domain.Invalid("category_name", "la categoría es requerida")
	case p.Licence == nil:
		return domain.Invalid("licence_name", "la licencia es requerida")
	case utf8.RuneCountInString(strings.TrimSpace(p.Name)) < 3:
		return domain.Invalid("product_name", "el nombre del producto debe tener al menos 3 caracteres")
	case utf8.RuneCountInString(strings.TrimSpace(p.Description)) < 10:
		return domain.Invalid("description", "la descripción debe tener al menos 10 caracteres")
	case utf8.RuneCountInString(strings.TrimSpace(p.SKU)) < 3:
		return domain.Invalid("sku", "el SKU debe tener al menos 3 caracteres")
	case !p.Price.IsPositive():
		return domain.Invalid("price", "el precio debe ser un número mayor a 0")
	case p.Stock < 0:
		return domain.Invalid("stock", "el stock debe ser un número entero mayor o igual a 0")
	case p.Discount != nil && (p.Discount.IsNegative() || p.Discount.GreaterThan(hundred)):
		return domain.Invalid("discount", "el descuento debe ser un número entre 0 y 100")
	case p.Dues != nil && *p.Dues < 0:
		return domain.Invalid("dues", "las cuotas no pueden ser negativas")
	}
	return nil
}

func validateName(field, name string) error {
	if name == "" {
		return domain.Invalid(field, "el nombre es requerido")
	}
	if utf8.RuneCountInString(name) > 100 {
		return domain.Invalid(field, "el nombre no puede superar 100 caracteres")
	}
	return nil
}

func nameRef(name string) *entity.Ref {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return entity.NameRef(name)
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, Image: c.Image}
}

func toLicenceResponse(l *entity.Licence) dto.LicenceResponse {
	return dto.LicenceResponse{ID: l.ID, Name: l.Name, Description: l.Description, Image: l.Image}
}
