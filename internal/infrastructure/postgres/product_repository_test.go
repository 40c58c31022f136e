package postgres_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/postgres"
)

var productCols = []string{
	"id", "name", "sku", "description", "price", "stock",
	"category_id", "category_name", "licence_id", "licence_name",
	"discount", "dues", "image_front", "image_back",
}

func strPtr(s string) *string { return &s }

func TestProductRepo_List_MapeaReferencias(t *testing.T) {
	mock := newMock(t)
	discount := decimal.NewFromInt(10)
	dues := 3
	mock.ExpectQuery(`SELECT .+ FROM products p`).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow("1", "Baby Yoda", "SW-001", "Figura de Grogu", decimal.NewFromInt(25000), 5,
				strPtr("2"), strPtr("Funko Pop"), strPtr("7"), strPtr("Star Wars"),
				&discount, &dues, "", "").
			AddRow("2", "Pikachu", "PK-001", "Figura", decimal.NewFromInt(19990), 0,
				(*string)(nil), (*string)(nil), (*string)(nil), (*string)(nil),
				(*decimal.Decimal)(nil), (*int)(nil), "pikachu.webp", ""))

	list, err := postgres.NewProductRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Star Wars", list[0].LicenceName())
	assert.Equal(t, "7", list[0].Licence.ID)
	assert.Equal(t, "Funko Pop", list[0].CategoryName())
	require.NotNil(t, list[0].Discount)
	assert.True(t, list[0].Discount.Equal(discount))
	assert.Equal(t, 3, *list[0].Dues)

	assert.Nil(t, list[1].Licence)
	assert.Nil(t, list[1].Discount)
	assert.Equal(t, "pikachu.webp", list[1].ImageFront)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_GetByID_Inexistente_RetornaNil(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT .+ WHERE p.id::text = \$1`).
		WithArgs("99").
		WillReturnError(pgx.ErrNoRows)

	p, err := postgres.NewProductRepository(mock).GetByID(context.Background(), "99")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func newProduct() *entity.Product {
	return &entity.Product{
		Name: "Baby Yoda", SKU: "SW-001", Description: "Figura de Grogu",
		Price: decimal.NewFromInt(25000), Stock: 5,
		Category: entity.NameRef("Funko Pop"), Licence: entity.NameRef("Star Wars"),
	}
}

func TestProductRepo_Create_CompletaID(t *testing.T) {
	mock := newMock(t)
	p := newProduct()
	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(p.Name, p.SKU, p.Description, p.Price, p.Stock, "Funko Pop", "Star Wars",
			p.Discount, p.Dues, p.ImageFront, p.ImageBack).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("42"))

	require.NoError(t, postgres.NewProductRepository(mock).Create(context.Background(), p))
	assert.Equal(t, "42", p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Create_TaxonomiaInexistente_RetornaInvalido(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO products`).WillReturnError(pgx.ErrNoRows)

	err := postgres.NewProductRepository(mock).Create(context.Background(), newProduct())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductRepo_Create_SKUDuplicado_RetornaDuplicado(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO products`).WillReturnError(&pgconn.PgError{Code: "23505"})

	err := postgres.NewProductRepository(mock).Create(context.Background(), newProduct())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductRepo_Update_Inexistente_RetornaNotFound(t *testing.T) {
	mock := newMock(t)
	p := newProduct()
	p.ID = "9"
	mock.ExpectExec(`UPDATE products p SET`).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectQuery(`SELECT .+ WHERE p.id::text = \$1`).WithArgs("9").WillReturnError(pgx.ErrNoRows)

	err := postgres.NewProductRepository(mock).Update(context.Background(), p)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepo_Update_Ok(t *testing.T) {
	mock := newMock(t)
	p := newProduct()
	p.ID = "1"
	mock.ExpectExec(`UPDATE products p SET`).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, postgres.NewProductRepository(mock).Update(context.Background(), p))
}

func TestProductRepo_Delete(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM products`).WithArgs("1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM products`).WithArgs("2").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := postgres.NewProductRepository(mock)
	assert.NoError(t, repo.Delete(context.Background(), "1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "2"), domain.ErrNotFound)
}

func TestTaxonomyRepos(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT id::text, name, description, image FROM categories`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "image"}).
			AddRow("1", "Funko Pop", "Figuras de vinilo", ""))
	mock.ExpectQuery(`INSERT INTO licences`).
		WithArgs("Marvel", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("3"))
	mock.ExpectQuery(`INSERT INTO categories`).
		WithArgs("Funko Pop", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	cats, err := postgres.NewCategoryRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Funko Pop", cats[0].Name)

	l := &entity.Licence{Name: "Marvel"}
	require.NoError(t, postgres.NewLicenceRepository(mock).Create(context.Background(), l))
	assert.Equal(t, "3", l.ID)

	err = postgres.NewCategoryRepository(mock).Create(context.Background(), &entity.Category{Name: "Funko Pop"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
