// Package catalog mantiene la última lista de productos leída del backend de
// catálogo y expone el CRUD de productos, categorías y licencias.
package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-Funkos-api/pkg/logger"
)

// snapshot contenido inmutable de la caché; se reemplaza completo en cada refresco.
type snapshot struct {
	products  []entity.Product
	byID      map[string]int
	err       error
	fetchedAt time.Time
}

var emptySnapshot = &snapshot{byID: map[string]int{}}

// Cache última lista de productos. Los lectores nunca ven una lista a medio
// actualizar; refrescos concurrentes se resuelven por el último en terminar.
type Cache struct {
	repo    repository.ProductRepository
	log     *logger.Logger
	current atomic.Pointer[snapshot]
	loading atomic.Int32
}

// NewCache crea una caché vacía. Llamar a Refresh para cargarla.
func NewCache(repo repository.ProductRepository, log *logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop()
	}
	c := &Cache{repo: repo, log: log.Component("catalog")}
	c.current.Store(emptySnapshot)
	return c
}

// Refresh lee el catálogo completo y reemplaza la caché. Si la lectura falla la
// caché queda vacía con el error registrado, y el error se devuelve a quien refresca.
func (c *Cache) Refresh(ctx context.Context) error {
	c.loading.Add(1)
	defer c.loading.Add(-1)

	list, err := c.repo.List(ctx)
	if err != nil {
		err = fmt.Errorf("refrescar catálogo: %w", err)
		c.current.Store(&snapshot{byID: map[string]int{}, err: err, fetchedAt: time.Now()})
		c.log.Warn().Err(err).Msg("catálogo vacío tras error")
		return err
	}

	next := &snapshot{
		products:  make([]entity.Product, 0, len(list)),
		byID:      make(map[string]int, len(list)),
		fetchedAt: time.Now(),
	}
	for _, p := range list {
		if p == nil || p.ID == "" {
			continue
		}
		if _, dup := next.byID[p.ID]; dup {
			continue
		}
		prod := *p
		prod.Normalize()
		next.byID[prod.ID] = len(next.products)
		next.products = append(next.products, prod)
	}
	c.current.Store(next)
	c.log.Debug().Int("products", len(next.products)).Msg("catálogo actualizado")
	return nil
}

// GetByID busca un producto en la caché. Nunca falla: ok es false si no está.
func (c *Cache) GetByID(id string) (entity.Product, bool) {
	s := c.current.Load()
	i, ok := s.byID[id]
	if !ok {
		return entity.Product{}, false
	}
	return s.products[i], true
}

// Products copia de la lista en el orden del backend.
func (c *Cache) Products() []entity.Product {
	s := c.current.Load()
	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Err error del último refresco, o nil si fue exitoso.
func (c *Cache) Err() error {
	return c.current.Load().err
}

// Loading indica si hay un refresco en curso.
func (c *Cache) Loading() bool {
	return c.loading.Load() > 0
}

// FetchedAt momento del último refresco (cero si nunca se refrescó).
func (c *Cache) FetchedAt() time.Time {
	return c.current.Load().fetchedAt
}

// Run refresca la caché cada interval hasta que ctx se cancele.
// interval <= 0 no programa refrescos.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}
