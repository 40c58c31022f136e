package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LicenceRepository  = (*LicenceRepo)(nil)
)

// taxonomyRow fila común de categories y licences.
type taxonomyRow struct {
	ID, Name, Description, Image string
}

func listTaxonomy(ctx context.Context, q Querier, table string) ([]taxonomyRow, error) {
	rows, err := q.Query(ctx, `SELECT id::text, name, description, image FROM `+table+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []taxonomyRow
	for rows.Next() {
		var t taxonomyRow
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Image); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func insertTaxonomy(ctx context.Context, q Querier, table string, t taxonomyRow) (string, error) {
	var id string
	err := q.QueryRow(ctx,
		`INSERT INTO `+table+` (name, description, image) VALUES ($1, $2, $3) RETURNING id::text`,
		t.Name, t.Description, t.Image,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("insert %s: %w", table, err)
	}
	return id, nil
}

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// List devuelve las categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := listTaxonomy(ctx, r.q, "categories")
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(rows))
	for _, t := range rows {
		out = append(out, &entity.Category{ID: t.ID, Name: t.Name, Description: t.Description, Image: t.Image})
	}
	return out, nil
}

// Create inserta la categoría. Un nombre repetido retorna ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	id, err := insertTaxonomy(ctx, r.q, "categories", taxonomyRow{Name: c.Name, Description: c.Description, Image: c.Image})
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// LicenceRepo licencias sobre PostgreSQL.
type LicenceRepo struct {
	q Querier
}

// NewLicenceRepository construye el adaptador de licencias.
func NewLicenceRepository(q Querier) *LicenceRepo {
	return &LicenceRepo{q: q}
}

// List devuelve las licencias ordenadas por nombre.
func (r *LicenceRepo) List(ctx context.Context) ([]*entity.Licence, error) {
	rows, err := listTaxonomy(ctx, r.q, "licences")
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Licence, 0, len(rows))
	for _, t := range rows {
		out = append(out, &entity.Licence{ID: t.ID, Name: t.Name, Description: t.Description, Image: t.Image})
	}
	return out, nil
}

// Create inserta la licencia. Un nombre repetido retorna ErrDuplicate.
func (r *LicenceRepo) Create(ctx context.Context, l *entity.Licence) error {
	id, err := insertTaxonomy(ctx, r.q, "licences", taxonomyRow{Name: l.Name, Description: l.Description, Image: l.Image})
	if err != nil {
		return err
	}
	l.ID = id
	return nil
}
