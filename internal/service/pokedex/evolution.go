package pokedex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/provider"
)

// ResolveEvolutionChain fetches the evolution chain named by p's species
// and attaches it to p. Every stage of a multi-stage chain is then fetched
// with details only, without being registered. A stage whose details cannot
// be loaded keeps its stub, unless it is p's own species, in which case a
// clone of p stands in for it.
func (s *Service) ResolveEvolutionChain(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	species, err := p.Species()
	if err != nil {
		return nil, err
	}
	if species.EvolutionChainURL == "" {
		return p, nil
	}

	res, err := s.provider.FetchEvolutionChain(ctx, species.EvolutionChainURL)
	if err != nil {
		return nil, fmt.Errorf("fetch evolution chain for %s: %w", p.Name(), err)
	}

	chain, err := s.buildChain(res)
	if err != nil {
		return nil, fmt.Errorf("build evolution chain for %s: %w", p.Name(), err)
	}
	if err := p.SetData(domain.SubRecord{Kind: domain.RecordEvolutionChain, Chain: chain}); err != nil {
		return nil, err
	}
	if chain.IsSingle() {
		return p, nil
	}

	var g errgroup.Group
	chain.LinkMap(func(link domain.Link, stub *domain.Pokemon) {
		if stub.Name() == "" {
			return
		}
		g.Go(func() error {
			return s.resolveStage(ctx, p, chain, link.Node, stub.Name())
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) resolveStage(ctx context.Context, root *domain.Pokemon, chain *domain.EvolutionChain, id domain.NodeID, name string) error {
	stage, err := s.FetchPokemon(ctx, name, Facets{Details: true}, Options{NoSave: true})
	if err == nil {
		return chain.SetPokemon(id, stage)
	}

	var detailsErr *domain.DetailsError
	if !errors.As(err, &detailsErr) || ctx.Err() != nil {
		return err
	}

	s.log.InfoContext(ctx, "evolution stage has no details",
		slog.String("pokemon", root.Name()),
		slog.String("stage", name),
		slog.String("error", err.Error()),
	)

	if speciesName, err := root.SpeciesName(); err == nil && speciesName == name {
		return chain.SetPokemon(id, root.Clone())
	}
	if species, err := root.Species(); err == nil && species.Name == name {
		return chain.SetPokemon(id, root.Clone())
	}
	return nil
}

func (s *Service) buildChain(res *provider.ChainResult) (*domain.EvolutionChain, error) {
	chain := domain.NewEvolutionChain(res.ID, domain.MakePokemon(s.baseURL, res.Chain.SpeciesName))
	if err := s.linkStages(chain, domain.RootNode, res.Chain.EvolvesTo); err != nil {
		return nil, err
	}
	return chain, nil
}

func (s *Service) linkStages(chain *domain.EvolutionChain, parent domain.NodeID, links []provider.ChainLinkResult) error {
	for _, link := range links {
		id, err := chain.AddEvolution(parent, domain.MakePokemon(s.baseURL, link.SpeciesName))
		if err != nil {
			return err
		}
		if err := s.linkStages(chain, id, link.EvolvesTo); err != nil {
			return err
		}
	}
	return nil
}
