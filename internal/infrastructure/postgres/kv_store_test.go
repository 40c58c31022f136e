package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/postgres"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestKVStore_Get_Existente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT value FROM kv_store WHERE key`).
		WithArgs("carrito:1").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(`[]`))

	v, ok, err := postgres.NewKVStore(mock).Get(context.Background(), "carrito:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_Get_Inexistente(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT value FROM kv_store`).
		WithArgs("nada").
		WillReturnError(pgx.ErrNoRows)

	_, ok, err := postgres.NewKVStore(mock).Get(context.Background(), "nada")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_Get_ErrorDeConexion(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`SELECT value FROM kv_store`).
		WithArgs("k").
		WillReturnError(errors.New("conn reset"))

	_, _, err := postgres.NewKVStore(mock).Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestKVStore_SetYRemove(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO kv_store`).
		WithArgs("sesion:1", `{"id":"1"}`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`DELETE FROM kv_store`).
		WithArgs("sesion:1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	kv := postgres.NewKVStore(mock)
	require.NoError(t, kv.Set(context.Background(), "sesion:1", `{"id":"1"}`))
	require.NoError(t, kv.Remove(context.Background(), "sesion:1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_SetTTL_GuardaVencimiento(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO kv_store \(key, value, expires_at\)`).
		WithArgs("sesion:1", `{"id":"1"}`, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	kv := postgres.NewKVStore(mock)
	require.NoError(t, kv.SetTTL(context.Background(), "sesion:1", `{"id":"1"}`, time.Hour))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_SetTTL_SinVencimientoUsaSet(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`INSERT INTO kv_store \(key, value\) VALUES`).
		WithArgs("carrito:1", "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	kv := postgres.NewKVStore(mock)
	require.NoError(t, kv.SetTTL(context.Background(), "carrito:1", "[]", 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVStore_PurgeExpired(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`DELETE FROM kv_store WHERE expires_at IS NOT NULL`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := postgres.NewKVStore(mock).PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
