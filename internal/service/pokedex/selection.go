package pokedex

import (
	"sync"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

type pokemonLookup interface {
	Get(name string) (*domain.Pokemon, error)
}

// Selection tracks the pokemon currently chosen for display. Only
// registered pokemon can be selected.
type Selection struct {
	pokemon pokemonLookup

	mu   sync.RWMutex
	name string
}

// NewSelection creates an empty selection backed by the registry.
func NewSelection(pokemon pokemonLookup) *Selection {
	return &Selection{pokemon: pokemon}
}

// Select marks name as selected and returns the registered pokemon.
func (s *Selection) Select(name string) (*domain.Pokemon, error) {
	name = domain.NormalizeName(name)
	p, err := s.pokemon.Get(name)
	if err != nil {
		return nil, &domain.SelectionError{Name: name}
	}

	s.mu.Lock()
	s.name = name
	s.mu.Unlock()

	return p, nil
}

// Selected returns the selected pokemon, false when nothing is selected.
func (s *Selection) Selected() (*domain.Pokemon, bool) {
	s.mu.RLock()
	name := s.name
	s.mu.RUnlock()

	if name == "" {
		return nil, false
	}
	p, err := s.pokemon.Get(name)
	if err != nil {
		return nil, false
	}
	return p, true
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	s.name = ""
	s.mu.Unlock()
}
