// Package cache implementa la caché TTL de consultas (en memoria o Redis).
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Cache almacén clave/valor con expiración.
type Cache interface {
	// Get devuelve (nil, false, nil) si la clave no existe o expiró.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// GetJSON lee y decodifica una entrada JSON. Una entrada corrupta cuenta como ausente.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var out T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, nil
	}
	return out, true, nil
}

// SetJSON codifica val como JSON y lo guarda con el TTL dado.
func SetJSON(ctx context.Context, c Cache, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, raw, ttl)
}
