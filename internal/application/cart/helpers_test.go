package cart_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-Funkos-api/internal/application/ports"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeKV struct {
	mu      sync.Mutex
	data    map[string]string
	sets    int
	failSet bool
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("almacenamiento caído")
	}
	f.sets++
	f.data[key] = value
	return nil
}

func (f *fakeKV) SetTTL(ctx context.Context, key, value string, _ time.Duration) error {
	return f.Set(ctx, key, value)
}

func (f *fakeKV) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) raw(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key]
}

type fakeCatalog map[string]entity.Product

func (c fakeCatalog) GetByID(id string) (entity.Product, bool) {
	p, ok := c[id]
	return p, ok
}

type fakePublisher struct {
	mu         sync.Mutex
	updated    []ports.CartUpdated
	checkedOut []ports.CartCheckedOut
}

func (p *fakePublisher) PublishCartUpdated(_ context.Context, ev ports.CartUpdated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, ev)
	return nil
}

func (p *fakePublisher) PublishCartCheckedOut(_ context.Context, ev ports.CartCheckedOut) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.checkedOut = append(p.checkedOut, ev)
	return nil
}

func (p *fakePublisher) updatedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.updated)
}

type fakePDF struct{}

func (fakePDF) GenerateReceiptPDF(_ context.Context, r *entity.Receipt) ([]byte, error) {
	return []byte("%PDF-" + r.ID), nil
}

func product(id string, price int64, stock int) entity.Product {
	return entity.Product{
		ID:    id,
		Name:  "Funko " + id,
		SKU:   "FK-" + id,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
}
