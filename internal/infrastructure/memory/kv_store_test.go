package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/infrastructure/memory"
)

func TestKVStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	_, ok, err := kv.Get(ctx, "carrito:1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "carrito:1", "[]"))
	v, ok, err := kv.Get(ctx, "carrito:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	require.NoError(t, kv.Remove(ctx, "carrito:1"))
	require.NoError(t, kv.Remove(ctx, "carrito:1"), "remover una clave inexistente no es error")
	assert.Zero(t, kv.Len())
}

func TestKVStore_AccesoConcurrente(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			_ = kv.Set(ctx, key, "v")
			_, _, _ = kv.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, kv.Len())
}

func TestKVStore_SetTTL_ExpiraYSePurga(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	kv := memory.NewKVStore(memory.WithClock(func() time.Time { return now }))

	require.NoError(t, kv.SetTTL(ctx, "sesion:a", "{}", time.Minute))
	require.NoError(t, kv.SetTTL(ctx, "sesion:b", "{}", time.Hour))
	require.NoError(t, kv.Set(ctx, "carrito:1", "[]"))

	_, ok, err := kv.Get(ctx, "sesion:a")
	require.NoError(t, err)
	assert.True(t, ok, "antes del vencimiento la clave existe")

	now = now.Add(2 * time.Minute)
	_, ok, err = kv.Get(ctx, "sesion:a")
	require.NoError(t, err)
	assert.False(t, ok, "una clave vencida no se devuelve")

	now = now.Add(2 * time.Hour)
	n, err := kv.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, kv.Len(), "solo queda la clave sin vencimiento")
}

func TestKVStore_SetTTL_SinVencimiento(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()

	require.NoError(t, kv.SetTTL(ctx, "k", "v", 0))
	n, err := kv.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	v, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
