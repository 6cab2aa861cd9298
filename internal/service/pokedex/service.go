package pokedex

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/provider"
)

type pokemonRepo interface {
	Exists(name string) bool
	Get(name string) (*domain.Pokemon, error)
	Put(name string, p *domain.Pokemon) *domain.Pokemon
	All() []*domain.Pokemon
}

type pokemonProvider interface {
	BaseURL() string
	FetchPage(ctx context.Context, offset, limit int) (*provider.PageResult, error)
	FetchDetails(ctx context.Context, detailsURL string) (*provider.DetailsResult, error)
	FetchSpecies(ctx context.Context, name string) (*provider.SpeciesResult, error)
	FetchEvolutionChain(ctx context.Context, chainURL string) (*provider.ChainResult, error)
}

// Facets selects which sub-records to load. EvolutionChain implies Species,
// the chain URL lives in the species record.
type Facets struct {
	Details        bool
	Species        bool
	EvolutionChain bool
}

func (f Facets) normalized() Facets {
	if f.EvolutionChain {
		f.Species = true
	}
	return f
}

// Options tune a single fetch.
type Options struct {
	// Reload re-fetches sub-records even if they are already attached.
	Reload bool
	// NoSave keeps a newly created pokemon out of the registry, so that
	// speculative lookups do not disturb listing order.
	NoSave bool
}

// Service loads pokemon and enriches them with details, species and
// evolution chains.
type Service struct {
	log      *slog.Logger
	pokemon  pokemonRepo
	provider pokemonProvider
	details  *detailsLoader
	baseURL  string
}

// NewService creates a new pokedex service.
func NewService(logger *slog.Logger, pokemon pokemonRepo, prov pokemonProvider) *Service {
	return &Service{
		log:      logger.With("service", "pokedex"),
		pokemon:  pokemon,
		provider: prov,
		details:  newDetailsLoader(prov.FetchDetails),
		baseURL:  prov.BaseURL(),
	}
}

// Exists reports whether name is in the registry.
func (s *Service) Exists(name string) bool {
	return s.pokemon.Exists(domain.NormalizeName(name))
}

// Loaded returns every registered pokemon in registration order.
func (s *Service) Loaded() []*domain.Pokemon {
	return s.pokemon.All()
}

// FetchPokemon returns the pokemon called name with the requested facets
// attached. Facets already present are not fetched again unless
// opts.Reload is set. Details and species are fetched concurrently; the
// first failure is returned and sub-records attached by the sibling fetch
// stay in place.
func (s *Service) FetchPokemon(ctx context.Context, name string, facets Facets, opts Options) (*domain.Pokemon, error) {
	name = domain.NormalizeName(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}

	p := s.prepare(name, opts)
	if err := s.enrich(ctx, p, facets, opts.Reload); err != nil {
		return nil, err
	}
	return p, nil
}

// prepare returns the instance sub-records should be attached to: the
// registered one unless a reload of an unsaved pokemon was asked for, or a
// new stub (registered unless opts.NoSave).
func (s *Service) prepare(name string, opts Options) *domain.Pokemon {
	if !opts.Reload || !opts.NoSave {
		if p, err := s.pokemon.Get(name); err == nil {
			return p
		}
	}

	stub := domain.MakePokemon(s.baseURL, name)
	if opts.NoSave {
		return stub
	}
	return s.pokemon.Put(name, stub)
}

// enrich fetches the facets p lacks (or all requested facets on reload).
func (s *Service) enrich(ctx context.Context, p *domain.Pokemon, facets Facets, reload bool) error {
	want := facets.normalized()
	if !reload {
		have := p.Contains()
		want.Details = want.Details && !have.HasDetails
		want.Species = want.Species && !have.HasSpecies
		want.EvolutionChain = want.EvolutionChain && !have.HasEvolutionChain
	}

	var g errgroup.Group
	if want.Details {
		g.Go(func() error {
			return s.fetchDetails(ctx, p, reload)
		})
	}
	switch {
	case want.Species:
		g.Go(func() error {
			return s.fetchSpecies(ctx, p, want.EvolutionChain)
		})
	case want.EvolutionChain:
		g.Go(func() error {
			_, err := s.ResolveEvolutionChain(ctx, p)
			return err
		})
	}
	return g.Wait()
}

func (s *Service) fetchDetails(ctx context.Context, p *domain.Pokemon, reload bool) error {
	res, err := s.details.Load(ctx, p.DetailsURL(), reload)
	if err != nil {
		s.log.WarnContext(ctx, "details fetch failed",
			slog.String("pokemon", p.Name()),
			slog.String("error", err.Error()),
		)
		return &domain.DetailsError{Name: p.Name(), Err: err}
	}
	return p.SetData(domain.SubRecord{Kind: domain.RecordDetails, Details: mapDetails(res)})
}
