package lock

import (
	"context"
	"errors"
)

var (
	ErrNotAcquired = errors.New("lock not acquired")
)

// Locker protege una sección crítica por key.
// Si otro proceso tiene la key, devuelve ErrNotAcquired sin esperar.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
