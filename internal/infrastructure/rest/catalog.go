package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LicenceRepository  = (*LicenceRepo)(nil)
)

// productPayload producto tal como lo serializa el backend.
// La descripción puede llegar como product_description o description.
type productPayload struct {
	ID                 flexID           `json:"product_id"`
	Name               string           `json:"product_name"`
	SKU                string           `json:"sku"`
	ProductDescription string           `json:"product_description"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	Stock              flexInt          `json:"stock"`
	Licence            json.RawMessage  `json:"licence"`
	Category           json.RawMessage  `json:"category"`
	Discount           *decimal.Decimal `json:"discount"`
	Dues               flexInt          `json:"dues"`
	ImageFront         string           `json:"image_front"`
	ImageBack          string           `json:"image_back"`
}

func (p productPayload) toEntity() *entity.Product {
	desc := p.ProductDescription
	if desc == "" {
		desc = p.Description
	}
	out := &entity.Product{
		ID:          string(p.ID),
		Name:        p.Name,
		SKU:         p.SKU,
		Description: desc,
		Price:       p.Price,
		Stock:       p.Stock.Value,
		Licence:     decodeRef(p.Licence, "licence_id", "licence_name"),
		Category:    decodeRef(p.Category, "category_id", "category_name"),
		Discount:    p.Discount,
		Dues:        p.Dues.ptr(),
		ImageFront:  p.ImageFront,
		ImageBack:   p.ImageBack,
	}
	out.Normalize()
	return out
}

// ProductRepo catálogo de productos servido por el backend REST.
type ProductRepo struct {
	c          *Client
	categories *CategoryRepo
	licences   *LicenceRepo
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(c *Client) *ProductRepo {
	return &ProductRepo{c: c, categories: NewCategoryRepository(c), licences: NewLicenceRepository(c)}
}

// List GET /product/list/. Acepta un arreglo o {"products": [...]}.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	raw, err := r.c.do(ctx, http.MethodGet, "/product/list/", "", nil)
	if err != nil {
		return nil, err
	}
	var payload []productPayload
	if err := decodeList(raw, "products", &payload); err != nil {
		return nil, fmt.Errorf("backend: lista de productos inválida: %w", err)
	}
	out := make([]*entity.Product, 0, len(payload))
	for _, p := range payload {
		if p.ID == "" {
			continue
		}
		out = append(out, p.toEntity())
	}
	return out, nil
}

// GetByID GET /product/find/id/{id}/. Un 404 retorna (nil, nil).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p productPayload
	err := r.c.getJSON(ctx, "/product/find/id/"+url.PathEscape(id)+"/", &p)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if p.ID == "" {
		return nil, nil
	}
	return p.toEntity(), nil
}

// Create POST /product/create/ (multipart, categoría y licencia por id).
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	fields, err := r.formFields(ctx, product)
	if err != nil {
		return err
	}
	var resp struct {
		ID      flexID         `json:"product_id"`
		Product productPayload `json:"product"`
	}
	if err := r.c.postMultipart(ctx, "/product/create/", fields, &resp); err != nil {
		return err
	}
	switch {
	case resp.ID != "":
		product.ID = string(resp.ID)
	case resp.Product.ID != "":
		product.ID = string(resp.Product.ID)
	}
	return nil
}

// Update POST /product/update/{id}/ (multipart).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	fields, err := r.formFields(ctx, product)
	if err != nil {
		return err
	}
	return r.c.postMultipart(ctx, "/product/update/"+url.PathEscape(product.ID)+"/", fields, nil)
}

// Delete DELETE /product/delete/{id}/.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	err := r.c.delete(ctx, "/product/delete/"+url.PathEscape(id)+"/")
	var be *domain.BackendError
	if errors.As(err, &be) && be.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return err
}

// formFields arma el formulario del backend. Categoría y licencia se envían por id;
// si la referencia solo trae nombre se resuelve contra los listados.
func (r *ProductRepo) formFields(ctx context.Context, p *entity.Product) ([][2]string, error) {
	categoryID, err := r.resolveCategory(ctx, p.Category)
	if err != nil {
		return nil, err
	}
	licenceID, err := r.resolveLicence(ctx, p.Licence)
	if err != nil {
		return nil, err
	}
	discount := "0"
	if p.Discount != nil {
		discount = p.Discount.Truncate(0).String()
	}
	dues := "0"
	if p.Dues != nil {
		dues = strconv.Itoa(*p.Dues)
	}
	fields := [][2]string{
		{"product_name", p.Name},
		{"product_description", p.Description},
		{"price", p.Price.String()},
		{"stock", strconv.Itoa(p.Stock)},
		{"sku", strings.ToUpper(p.SKU)},
		{"discount", discount},
		{"dues", dues},
		{"licence_id", licenceID},
		{"category_id", categoryID},
	}
	if p.ImageFront != "" {
		fields = append(fields, [2]string{"image_front", p.ImageFront})
	}
	if p.ImageBack != "" {
		fields = append(fields, [2]string{"image_back", p.ImageBack})
	}
	return fields, nil
}

func (r *ProductRepo) resolveCategory(ctx context.Context, ref *entity.Ref) (string, error) {
	if ref == nil {
		return "", domain.Invalid("category_name", "la categoría es requerida")
	}
	if ref.HasID() {
		return ref.ID, nil
	}
	list, err := r.categories.List(ctx)
	if err != nil {
		return "", err
	}
	for _, c := range list {
		if strings.EqualFold(c.Name, ref.Name) {
			return c.ID, nil
		}
	}
	return "", domain.Invalid("category_name", "Categoría seleccionada no válida")
}

func (r *ProductRepo) resolveLicence(ctx context.Context, ref *entity.Ref) (string, error) {
	if ref == nil {
		return "", domain.Invalid("licence_name", "la licencia es requerida")
	}
	if ref.HasID() {
		return ref.ID, nil
	}
	list, err := r.licences.List(ctx)
	if err != nil {
		return "", err
	}
	for _, l := range list {
		if strings.EqualFold(l.Name, ref.Name) {
			return l.ID, nil
		}
	}
	return "", domain.Invalid("licence_name", "Licencia seleccionada no válida")
}

type categoryPayload struct {
	ID          flexID `json:"category_id"`
	Name        string `json:"category_name"`
	Description string `json:"category_description"`
	Image       string `json:"image_category"`
}

// CategoryRepo categorías servidas por el backend REST.
type CategoryRepo struct {
	c *Client
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(c *Client) *CategoryRepo {
	return &CategoryRepo{c: c}
}

// List GET /category/. Acepta un arreglo o {"categories": [...]}.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	raw, err := r.c.do(ctx, http.MethodGet, "/category/", "", nil)
	if err != nil {
		return nil, err
	}
	var payload []categoryPayload
	if err := decodeList(raw, "categories", &payload); err != nil {
		return nil, fmt.Errorf("backend: lista de categorías inválida: %w", err)
	}
	out := make([]*entity.Category, 0, len(payload))
	for _, c := range payload {
		out = append(out, &entity.Category{ID: string(c.ID), Name: c.Name, Description: c.Description, Image: c.Image})
	}
	return out, nil
}

// Create POST /category/create/.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	var resp categoryPayload
	err := r.c.postMultipart(ctx, "/category/create/", [][2]string{
		{"category_name", c.Name},
		{"category_description", c.Description},
	}, &resp)
	if err != nil {
		return err
	}
	c.ID = string(resp.ID)
	return nil
}

type licencePayload struct {
	ID          flexID `json:"licence_id"`
	Name        string `json:"licence_name"`
	Description string `json:"licence_description"`
	Image       string `json:"image_licence"`
}

// LicenceRepo licencias servidas por el backend REST.
type LicenceRepo struct {
	c *Client
}

// NewLicenceRepository construye el adaptador de licencias.
func NewLicenceRepository(c *Client) *LicenceRepo {
	return &LicenceRepo{c: c}
}

// List GET /licence/. Acepta un arreglo o {"licences": [...]}.
func (r *LicenceRepo) List(ctx context.Context) ([]*entity.Licence, error) {
	raw, err := r.c.do(ctx, http.MethodGet, "/licence/", "", nil)
	if err != nil {
		return nil, err
	}
	var payload []licencePayload
	if err := decodeList(raw, "licences", &payload); err != nil {
		return nil, fmt.Errorf("backend: lista de licencias inválida: %w", err)
	}
	out := make([]*entity.Licence, 0, len(payload))
	for _, l := range payload {
		out = append(out, &entity.Licence{ID: string(l.ID), Name: l.Name, Description: l.Description, Image: l.Image})
	}
	return out, nil
}

// Create POST /licence/create/.
func (r *LicenceRepo) Create(ctx context.Context, l *entity.Licence) error {
	var resp licencePayload
	err := r.c.postMultipart(ctx, "/licence/create/", [][2]string{
		{"licence_name", l.Name},
		{"licence_description", l.Description},
	}, &resp)
	if err != nil {
		return err
	}
	l.ID = string(resp.ID)
	return nil
}
