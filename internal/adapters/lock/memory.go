package lock

import (
	"context"
	"sync"

	portlock "myvet/internal/ports/lock"
)

// Memory es el locker en proceso para dev y tests. Misma semántica que Redis:
// si la key está tomada, falla de inmediato.
type Memory struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{held: make(map[string]struct{})}
}

func (m *Memory) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	if _, busy := m.held[key]; busy {
		m.mu.Unlock()
		return portlock.ErrNotAcquired
	}
	m.held[key] = struct{}{}
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.held, key)
		m.mu.Unlock()
	}()

	return fn(ctx)
}
