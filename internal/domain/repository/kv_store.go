package repository

import (
	"context"
	"time"
)

// KeyValueStore almacenamiento durable clave-valor (carritos, sesiones, cuentas locales, comprobantes).
// Get retorna ok=false si la clave no existe o ya expiró. Remove de una clave inexistente no es error.
// SetTTL guarda una clave que deja de existir pasado ttl; ttl <= 0 equivale a Set.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	SetTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// ExpiredPurger lo implementan los almacenamientos que no eliminan solos las claves
// expiradas (memoria y PostgreSQL). PurgeExpired retorna cuántas claves borró.
type ExpiredPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
