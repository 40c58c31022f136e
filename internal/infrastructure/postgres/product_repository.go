package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id::text, p.name, p.sku, p.description, p.price, p.stock,
	c.id::text, c.name, l.id::text, l.name,
	p.discount, p.dues, p.image_front, p.image_back`

const productFrom = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN licences l ON l.id = p.licence_id`

// List devuelve el catálogo completo ordenado por id.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+productFrom+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id::text = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Create persiste un producto. Categoría y licencia se resuelven por nombre;
// si alguna no existe no se inserta nada y se retorna ErrInvalidInput.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, sku, description, price, stock, category_id, licence_id, discount, dues, image_front, image_back)
		SELECT $1, $2, $3, $4, $5, c.id, l.id, $8, $9, $10, $11
		FROM categories c, licences l
		WHERE c.name = $6 AND l.name = $7
		RETURNING id::text`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.SKU, product.Description, product.Price, product.Stock,
		product.CategoryName(), product.LicenceName(),
		product.Discount, product.Dues, product.ImageFront, product.ImageBack,
	).Scan(&product.ID)
	if err != nil {
		return productWriteError("insert product", err)
	}
	return nil
}

// Update reemplaza los datos de un producto existente.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products p SET
			name = $2, sku = $3, description = $4, price = $5, stock = $6,
			category_id = c.id, licence_id = l.id,
			discount = $9, dues = $10, image_front = $11, image_back = $12, updated_at = now()
		FROM categories c, licences l
		WHERE p.id::text = $1 AND c.name = $7 AND l.name = $8`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.SKU, product.Description, product.Price, product.Stock,
		product.CategoryName(), product.LicenceName(),
		product.Discount, product.Dues, product.ImageFront, product.ImageBack,
	)
	if err != nil {
		return productWriteError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		// el producto no existe o la categoría/licencia no existen
		exists, err := r.GetByID(ctx, product.ID)
		if err != nil {
			return err
		}
		if exists == nil {
			return domain.ErrNotFound
		}
		return domain.Invalid("category_name", "la categoría o la licencia no existen")
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id::text = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productWriteError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return domain.Invalid("category_name", "la categoría o la licencia no existen")
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return domain.Invalid("category_name", "la categoría o la licencia no existen")
	}
	return fmt.Errorf("%s: %w", op, err)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p              entity.Product
		catID, catName *string
		licID, licName *string
		discount       *decimal.Decimal
		dues           *int
	)
	if err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Description, &p.Price, &p.Stock,
		&catID, &catName, &licID, &licName,
		&discount, &dues, &p.ImageFront, &p.ImageBack,
	); err != nil {
		return nil, err
	}
	if catName != nil {
		p.Category = entity.IDRef(deref(catID), *catName)
	}
	if licName != nil {
		p.Licence = entity.IDRef(deref(licID), *licName)
	}
	p.Discount = discount
	p.Dues = dues
	return &p, nil
}
