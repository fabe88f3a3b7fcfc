package listing

import (
	"context"
	"sync"

	"github.com/jhoicas/scheduler-admin/pkg/logger"
)

// Ref caché de datos de referencia (almacenes, tipos de producto, roles...)
// con política "stale but present": un refresh fallido conserva el último
// resultado bueno en lugar de vaciar la vista.
type Ref[T any] struct {
	name  string
	fetch func(ctx context.Context, token string) ([]T, error)
	log   *logger.Logger

	mu     sync.RWMutex
	items  []T
	loaded bool
}

// NewRef construye la caché sobre la función de fetch upstream.
func NewRef[T any](name string, log *logger.Logger, fetch func(ctx context.Context, token string) ([]T, error)) *Ref[T] {
	return &Ref[T]{name: name, fetch: fetch, log: log}
}

// Get intenta refrescar y devuelve los elementos. Si el refresh falla y hay
// datos previos, devuelve los previos sin error; si nunca cargó, propaga el
// error.
func (r *Ref[T]) Get(ctx context.Context, token string) ([]T, error) {
	items, err := r.fetch(ctx, token)
	if err == nil {
		r.mu.Lock()
		r.items = items
		r.loaded = true
		r.mu.Unlock()
		return items, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.loaded {
		r.log.Warn().Err(err).Str("ref", r.name).Msg("refresh de referencia falló; se sirven datos previos")
		return r.items, nil
	}
	return nil, err
}

// Cached devuelve el último resultado bueno sin tocar la red.
func (r *Ref[T]) Cached() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items
}
