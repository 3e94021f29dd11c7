package cache

import (
	"context"
	"sync"
	"time"
)

// sweepThreshold a partir de cuántas entradas Set purga las expiradas.
const sweepThreshold = 1024

type entry struct {
	val []byte
	exp time.Time
}

// Memory caché TTL en memoria del proceso (un map con expiración perezosa).
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

var _ Cache = (*Memory)(nil)

// NewMemory construye la caché en memoria.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(e.exp) {
		m.mu.Lock()
		if cur, still := m.items[key]; still && !m.now().Before(cur.exp) {
			delete(m.items, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cp := make([]byte, len(val))
	copy(cp, val)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) >= sweepThreshold {
		now := m.now()
		for k, e := range m.items {
			if !now.Before(e.exp) {
				delete(m.items, k)
			}
		}
	}
	m.items[key] = entry{val: cp, exp: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	for _, k := range keys {
		delete(m.items, k)
	}
	m.mu.Unlock()
	return nil
}

// Len número de entradas almacenadas (incluye expiradas aún no purgadas).
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
