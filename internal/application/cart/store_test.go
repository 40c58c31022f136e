package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/cart"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

func openStore(t *testing.T, kv *fakeKV, userID string) *cart.Store {
	t.Helper()
	return cart.NewManager(kv, nil).Open(context.Background(), userID)
}

func ids(lines []entity.CartLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Product.ID)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// AddToCart
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToCart_NuncaSuperaElStock(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	p := product("1", 10, 4)

	for _, q := range []int{1, 2, 3, 1, 7, 1} {
		snap := s.AddToCart(ctx, p, q)
		require.Len(t, snap.Lines, 1)
		assert.LessOrEqual(t, snap.Lines[0].Quantity, p.Stock)
	}
	assert.Equal(t, 4, s.Count())
}

func TestAddToCart_LineaNuevaSeAcotaAlStock(t *testing.T) {
	s := openStore(t, newFakeKV(), "u1")
	snap := s.AddToCart(context.Background(), product("1", 10, 3), 10)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
}

func TestAddToCart_CantidadNoPositivaOSinStock_NoModifica(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := openStore(t, kv, "u1")

	s.AddToCart(ctx, product("1", 10, 3), 0)
	s.AddToCart(ctx, product("1", 10, 3), -2)
	s.AddToCart(ctx, product("2", 10, 0), 1)

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, kv.sets, "una operación sin efecto no persiste")
}

func TestAddToCart_RefrescaLaFotoDelProducto(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")

	s.AddToCart(ctx, product("1", 10, 5), 1)
	nuevo := product("1", 12, 8)
	snap := s.AddToCart(ctx, nuevo, 6)

	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 7, snap.Lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(12).Equal(snap.Lines[0].Product.Price))
}

func TestAddToCart_UnaLineaPorProductoEnOrdenDeInsercion(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")

	s.AddToCart(ctx, product("b", 1, 9), 1)
	s.AddToCart(ctx, product("a", 1, 9), 1)
	s.AddToCart(ctx, product("b", 1, 9), 1)
	s.AddToCart(ctx, product("c", 1, 9), 1)

	assert.Equal(t, []string{"b", "a", "c"}, ids(s.Lines()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / Update / Clear
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveFromCart_InexistenteEsNoOp(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	s.AddToCart(ctx, product("1", 10, 5), 1)

	snap := s.RemoveFromCart(ctx, "999")
	assert.Len(t, snap.Lines, 1)

	snap = s.RemoveFromCart(ctx, "1")
	assert.Empty(t, snap.Lines)
}

func TestUpdateQuantity_CeroEquivaARemove(t *testing.T) {
	ctx := context.Background()
	a := openStore(t, newFakeKV(), "a")
	b := openStore(t, newFakeKV(), "b")
	for _, s := range []*cart.Store{a, b} {
		s.AddToCart(ctx, product("1", 10, 5), 2)
		s.AddToCart(ctx, product("2", 5, 5), 1)
	}

	a.UpdateQuantity(ctx, "1", 0)
	b.RemoveFromCart(ctx, "1")

	assert.Equal(t, ids(b.Lines()), ids(a.Lines()))
	assert.NotContains(t, ids(a.Lines()), "1")

	a.UpdateQuantity(ctx, "2", -3)
	assert.Empty(t, a.Lines())
}

func TestUpdateQuantity_SeAcotaAlStockDeLaLinea(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	s.AddToCart(ctx, product("1", 10, 5), 1)

	snap := s.UpdateQuantity(ctx, "1", 50)
	assert.Equal(t, 5, snap.Lines[0].Quantity)

	snap = s.UpdateQuantity(ctx, "1", 2)
	assert.Equal(t, 2, snap.Lines[0].Quantity)

	snap = s.UpdateQuantity(ctx, "nada", 2)
	assert.Len(t, snap.Lines, 1)
}

func TestClearCart_Idempotente(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	s.AddToCart(ctx, product("1", 10, 5), 2)

	first := s.ClearCart(ctx)
	second := s.ClearCart(ctx)

	assert.Empty(t, first.Lines)
	assert.Empty(t, second.Lines)
	assert.Equal(t, 0, s.Count())
	assert.True(t, s.Total().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Total / Count
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalYCount_CarritoVacio(t *testing.T) {
	s := openStore(t, newFakeKV(), "u1")
	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 0, s.Count())
}

func TestTotalYCount_Ejemplo35y5(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	s.AddToCart(ctx, product("1", 10, 9), 2)
	s.AddToCart(ctx, product("2", 5, 9), 3)

	assert.True(t, decimal.NewFromInt(35).Equal(s.Total()), "total = %s", s.Total())
	assert.Equal(t, 5, s.Count())
}

// ──────────────────────────────────────────────────────────────────────────────
// Persistencia e hidratación
// ──────────────────────────────────────────────────────────────────────────────

func TestPersistencia_IdaYVueltaConservaParesYOrden(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := openStore(t, kv, "u1")
	s.AddToCart(ctx, product("c", 3, 9), 2)
	s.AddToCart(ctx, product("a", 1, 9), 5)
	s.AddToCart(ctx, product("b", 2, 9), 1)
	s.UpdateQuantity(ctx, "a", 4)

	rehidratado := cart.NewManager(kv, nil).Open(ctx, "u1")

	type pair struct {
		id  string
		qty int
	}
	pairs := func(lines []entity.CartLine) []pair {
		out := []pair{}
		for _, l := range lines {
			out = append(out, pair{l.Product.ID, l.Quantity})
		}
		return out
	}
	assert.Equal(t, pairs(s.Lines()), pairs(rehidratado.Lines()))
	assert.Equal(t, []pair{{"c", 2}, {"a", 4}, {"b", 1}}, pairs(rehidratado.Lines()))
	assert.True(t, s.Total().Equal(rehidratado.Total()))
}

func TestPersistencia_CadaMutacionGuardaElCarritoCompleto(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	s := openStore(t, kv, "u7")

	s.AddToCart(ctx, product("1", 10, 5), 1)
	assert.Contains(t, kv.raw(cart.Key("u7")), `"product_id":"1"`)

	s.ClearCart(ctx)
	assert.Equal(t, "[]", kv.raw(cart.Key("u7")))
}

func TestHidratacion_ContenidoInvalidoIniciaVacio(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	kv.data[cart.Key("u1")] = "{esto no es json"

	s := cart.NewManager(kv, nil).Open(ctx, "u1")
	assert.Empty(t, s.Lines())

	// el carrito sigue siendo usable
	s.AddToCart(ctx, product("1", 10, 5), 1)
	assert.Equal(t, 1, s.Count())
}

func TestHidratacion_DescartaLineasQueRompenInvariantes(t *testing.T) {
	kv := newFakeKV()
	kv.data[cart.Key("u1")] = `[
		{"product":{"product_id":"1","product_name":"A","price":"10","stock":2},"quantity":5},
		{"product":{"product_id":"2","product_name":"B","price":"10","stock":2},"quantity":0},
		{"product":{"product_id":"1","product_name":"A","price":"10","stock":2},"quantity":1},
		{"product":{"product_id":"","product_name":"C","price":"10","stock":2},"quantity":1}
	]`

	s := cart.NewManager(kv, nil).Open(context.Background(), "u1")
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "1", lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestPersistencia_ErrorDeAlmacenamientoNoInterrumpe(t *testing.T) {
	kv := newFakeKV()
	kv.failSet = true
	s := openStore(t, kv, "u1")

	snap := s.AddToCart(context.Background(), product("1", 10, 5), 2)
	assert.Equal(t, 2, snap.Count)
}

func TestManager_CarritosSeparadosPorUsuario(t *testing.T) {
	ctx := context.Background()
	m := cart.NewManager(newFakeKV(), nil)

	m.Open(ctx, "a").AddToCart(ctx, product("1", 10, 5), 2)
	assert.Equal(t, 0, m.Open(ctx, "b").Count())
	assert.Same(t, m.Open(ctx, "a"), m.Open(ctx, "a"))

	m.Forget("a")
	assert.Equal(t, 2, m.Open(ctx, "a").Count(), "tras Forget se rehidrata desde el almacenamiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificaciones y reconciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestSubscribe_AvisaSoloCuandoHayCambios(t *testing.T) {
	ctx := context.Background()
	m := cart.NewManager(newFakeKV(), nil)
	var avisos []cart.Snapshot
	m.Subscribe(func(s cart.Snapshot) { avisos = append(avisos, s) })

	s := m.Open(ctx, "u1")
	s.AddToCart(ctx, product("1", 10, 5), 1)
	s.RemoveFromCart(ctx, "no-existe")
	s.UpdateQuantity(ctx, "1", 3)

	require.Len(t, avisos, 2)
	assert.Equal(t, 3, avisos[1].Count)
	assert.Equal(t, "u1", avisos[1].UserID)
}

func TestSubscribe_ElListenerPuedeLeerElCarrito(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	var leido int
	s.Subscribe(func(cart.Snapshot) { leido = s.Count() })

	s.AddToCart(ctx, product("1", 10, 5), 3)
	assert.Equal(t, 3, leido)
}

func TestReconcile_AcotaYQuitaSegunCatalogo(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, newFakeKV(), "u1")
	s.AddToCart(ctx, product("1", 10, 9), 5)
	s.AddToCart(ctx, product("2", 10, 9), 2)
	s.AddToCart(ctx, product("3", 10, 9), 1)

	catalogo := fakeCatalog{
		"1": product("1", 11, 3),
		"3": product("3", 10, 9),
	}
	adj := s.Reconcile(ctx, catalogo.GetByID)

	require.Len(t, adj, 2)
	assert.Equal(t, cart.Adjustment{ProductID: "1", Name: "Funko 1", Previous: 5, Current: 3}, adj[0])
	assert.Equal(t, "2", adj[1].ProductID)
	assert.Equal(t, 0, adj[1].Current)

	assert.Equal(t, []string{"1", "3"}, ids(s.Lines()))
	assert.True(t, decimal.NewFromInt(43).Equal(s.Total()))
}
