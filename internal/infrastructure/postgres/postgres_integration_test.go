//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Tienda-Funkos-api/internal/testutil"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/config"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

func TestPostgres_MigracionesYRepositorios(t *testing.T) {
	dsn := testutil.StartPostgres(t)
	ctx := context.Background()

	require.NoError(t, postgres.RunMigrations(dsn, logger.Nop()))
	require.NoError(t, postgres.RunMigrations(dsn, logger.Nop()), "reaplicar no es error")

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	kv := postgres.NewKVStore(pool)
	require.NoError(t, kv.Set(ctx, "carrito:1", "[]"))
	require.NoError(t, kv.Set(ctx, "carrito:1", `[{"quantity":2}]`))
	v, ok, err := kv.Get(ctx, "carrito:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"quantity":2}]`, v)

	require.NoError(t, kv.SetTTL(ctx, "sesion:vencida", "{}", time.Millisecond))
	time.Sleep(20 * time.Millisecond)
	_, ok, err = kv.Get(ctx, "sesion:vencida")
	require.NoError(t, err)
	assert.False(t, ok, "una sesión vencida no se devuelve")
	purged, err := kv.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	require.NoError(t, postgres.NewCategoryRepository(pool).Create(ctx, &entity.Category{Name: "Funko Pop"}))
	require.NoError(t, postgres.NewLicenceRepository(pool).Create(ctx, &entity.Licence{Name: "Star Wars"}))

	products := postgres.NewProductRepository(pool)
	discount := decimal.NewFromInt(15)
	p := &entity.Product{
		Name: "Baby Yoda", SKU: "SW-001", Description: "Figura de Grogu",
		Price: decimal.RequireFromString("25000.50"), Stock: 4,
		Category: entity.NameRef("Funko Pop"), Licence: entity.NameRef("Star Wars"),
		Discount: &discount,
	}
	require.NoError(t, products.Create(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(p.Price))
	assert.Equal(t, "Star Wars", got.LicenceName())
	assert.Nil(t, got.Dues)

	p.Stock = 0
	require.NoError(t, products.Update(ctx, p))
	list, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Zero(t, list[0].Stock)

	require.NoError(t, products.Delete(ctx, p.ID))
}
