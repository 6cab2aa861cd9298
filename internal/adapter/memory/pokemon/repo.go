// Package pokemon is the in-memory registry of loaded pokemon. Entries live
// for the whole process and are never evicted.
package pokemon

import (
	"fmt"
	"sync"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

// Repo stores pokemon keyed by canonical name and remembers insertion order.
type Repo struct {
	mu    sync.RWMutex
	byKey map[string]*domain.Pokemon
	order []string
}

// New creates an empty registry.
func New() *Repo {
	return &Repo{byKey: make(map[string]*domain.Pokemon)}
}

// Exists reports whether name has been registered.
func (r *Repo) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byKey[name]
	return ok
}

// Get returns the registered pokemon or an error wrapping domain.ErrNotFound.
func (r *Repo) Get(name string) (*domain.Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byKey[name]
	if !ok {
		return nil, fmt.Errorf("pokemon %q: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

// Put registers p under name if name is absent and returns the instance
// stored under name. The first writer wins; later calls are no-ops.
func (r *Repo) Put(name string, p *domain.Pokemon) *domain.Pokemon {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byKey[name]; ok {
		return existing
	}
	r.byKey[name] = p
	r.order = append(r.order, name)
	return p
}

// All returns every registered pokemon in insertion order.
func (r *Repo) All() []*domain.Pokemon {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Pokemon, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byKey[name])
	}
	return out
}

// Len returns the number of registered pokemon.
func (r *Repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
