package pokedex

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/provider"
)

const testChainURL = testBaseURL + "/evolution-chain/1/"

func speciesWithChain(chainURL string) func(context.Context, string) (*provider.SpeciesResult, error) {
	return func(_ context.Context, name string) (*provider.SpeciesResult, error) {
		return &provider.SpeciesResult{Name: domain.BaseSpeciesName(name), EvolutionChainURL: chainURL}, nil
	}
}

func bulbasaurChain(_ context.Context, chainURL string) (*provider.ChainResult, error) {
	return &provider.ChainResult{
		ID: 1,
		Chain: provider.ChainLinkResult{
			SpeciesName: "bulbasaur",
			EvolvesTo: []provider.ChainLinkResult{{
				SpeciesName: "ivysaur",
				EvolvesTo:   []provider.ChainLinkResult{{SpeciesName: "venusaur"}},
			}},
		},
	}, nil
}

func TestService_ResolveEvolutionChain_EmptyURL(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{FetchSpeciesFunc: speciesWithChain("")}
	svc, _ := newTestService(prov)

	p, err := svc.FetchPokemon(context.Background(), "mew", Facets{Details: true, EvolutionChain: true}, Options{})
	require.NoError(t, err)

	assert.Nil(t, p.EvolutionChain())
	assert.Equal(t, int32(0), prov.chainCalls.Load())
	assert.Equal(t, int32(1), prov.detailsCalls.Load())
}

func TestService_ResolveEvolutionChain_RequiresSpecies(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{}
	svc, _ := newTestService(prov)

	_, err := svc.ResolveEvolutionChain(context.Background(), domain.MakePokemon(testBaseURL, "mew"))
	assert.ErrorIs(t, err, domain.ErrSpeciesUnavailable)
	assert.Equal(t, int32(0), prov.chainCalls.Load())
}

func TestService_ResolveEvolutionChain_Single(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{
		FetchSpeciesFunc: speciesWithChain(testChainURL),
		FetchEvolutionChainFunc: func(_ context.Context, chainURL string) (*provider.ChainResult, error) {
			return &provider.ChainResult{ID: 151, Chain: provider.ChainLinkResult{SpeciesName: "mew"}}, nil
		},
	}
	svc, _ := newTestService(prov)

	p, err := svc.FetchPokemon(context.Background(), "mew", Facets{EvolutionChain: true}, Options{})
	require.NoError(t, err)

	chain := p.EvolutionChain()
	require.NotNil(t, chain)
	assert.True(t, chain.IsSingle())
	assert.Equal(t, 151, chain.ID())
	assert.False(t, chain.Pokemon(domain.RootNode).HasDetails())
	assert.Equal(t, int32(0), prov.detailsCalls.Load())
}

func TestService_ResolveEvolutionChain_FetchesEveryStage(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{
		FetchSpeciesFunc:        speciesWithChain(testChainURL),
		FetchEvolutionChainFunc: bulbasaurChain,
	}
	svc, repo := newTestService(prov)
	ctx := context.Background()

	_, err := svc.FetchPokemon(ctx, "bulbasaur", Facets{Details: true}, Options{})
	require.NoError(t, err)

	p, err := svc.FetchPokemon(ctx, "bulbasaur", Facets{Details: true, EvolutionChain: true}, Options{})
	require.NoError(t, err)

	chain := p.EvolutionChain()
	require.NotNil(t, chain)
	require.Equal(t, 3, chain.Len())

	var names []string
	var phases []int
	chain.LinkMap(func(link domain.Link, stage *domain.Pokemon) {
		names = append(names, stage.Name())
		phases = append(phases, link.Phase)
		assert.True(t, stage.HasDetails(), stage.Name())
	})
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, names)
	assert.Equal(t, []int{0, 1, 2}, phases)

	assert.Same(t, p, chain.Pokemon(domain.RootNode))
	assert.Equal(t, 1, repo.Len(), "stages are not registered")
}

func TestService_ResolveEvolutionChain_SalvagesOwnSpecies(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{
		FetchSpeciesFunc: speciesWithChain(testChainURL),
		FetchEvolutionChainFunc: func(_ context.Context, chainURL string) (*provider.ChainResult, error) {
			return &provider.ChainResult{
				ID: 355,
				Chain: provider.ChainLinkResult{
					SpeciesName: "pumpkaboo",
					EvolvesTo:   []provider.ChainLinkResult{{SpeciesName: "gourgeist"}},
				},
			}, nil
		},
		FetchDetailsFunc: func(_ context.Context, detailsURL string) (*provider.DetailsResult, error) {
			name := nameFromURL(detailsURL)
			if name == "pumpkaboo-large" {
				return detailsFor(name), nil
			}
			return nil, notFound(detailsURL)
		},
	}
	svc, _ := newTestService(prov)
	ctx := context.Background()

	_, err := svc.FetchPokemon(ctx, "pumpkaboo-large", Facets{Details: true}, Options{})
	require.NoError(t, err)

	p, err := svc.FetchPokemon(ctx, "pumpkaboo-large", Facets{EvolutionChain: true}, Options{})
	require.NoError(t, err)

	chain := p.EvolutionChain()
	require.NotNil(t, chain)

	root := chain.Pokemon(domain.RootNode)
	assert.NotSame(t, p, root)
	assert.Equal(t, "pumpkaboo-large", root.Name())
	assert.True(t, root.HasDetails())

	stage := chain.Pokemon(domain.NodeID(1))
	assert.Equal(t, "gourgeist", stage.Name())
	assert.False(t, stage.HasDetails())
}

func TestService_ResolveEvolutionChain_ChainFetchError(t *testing.T) {
	t.Parallel()

	upstream := errors.New("upstream down")
	prov := &mockProvider{
		FetchSpeciesFunc: speciesWithChain(testChainURL),
		FetchEvolutionChainFunc: func(_ context.Context, chainURL string) (*provider.ChainResult, error) {
			return nil, upstream
		},
	}
	svc, repo := newTestService(prov)

	_, err := svc.FetchPokemon(context.Background(), "bulbasaur", Facets{EvolutionChain: true}, Options{})
	assert.ErrorIs(t, err, upstream)

	p, err := repo.Get("bulbasaur")
	require.NoError(t, err)
	assert.True(t, p.HasSpecies())
	assert.False(t, p.HasEvolutionChain())
}

func TestService_ResolveEvolutionChain_Branching(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{
		FetchSpeciesFunc: speciesWithChain(testChainURL),
		FetchEvolutionChainFunc: func(_ context.Context, chainURL string) (*provider.ChainResult, error) {
			return &provider.ChainResult{
				ID: 67,
				Chain: provider.ChainLinkResult{
					SpeciesName: "eevee",
					EvolvesTo: []provider.ChainLinkResult{
						{SpeciesName: "vaporeon"},
						{SpeciesName: "jolteon"},
						{SpeciesName: "flareon"},
					},
				},
			}, nil
		},
	}
	svc, _ := newTestService(prov)

	p, err := svc.FetchPokemon(context.Background(), "eevee", Facets{Details: true, EvolutionChain: true}, Options{})
	require.NoError(t, err)

	links := p.EvolutionChain().Links()
	require.Len(t, links, 4)
	assert.Equal(t, domain.Link{Node: 3, Phase: 1, PhaseIndex: 2, SiblingCount: 3}, links[3])
	assert.Equal(t, int32(4), prov.detailsCalls.Load())
}

func TestService_ResolveEvolutionChain_StageErrorFailsResolution(t *testing.T) {
	t.Parallel()

	prov := &mockProvider{
		FetchSpeciesFunc:        speciesWithChain(testChainURL),
		FetchEvolutionChainFunc: bulbasaurChain,
		FetchDetailsFunc: func(_ context.Context, detailsURL string) (*provider.DetailsResult, error) {
			if nameFromURL(detailsURL) == "ivysaur" {
				return detailsFor("missingno"), nil
			}
			return detailsFor(nameFromURL(detailsURL)), nil
		},
	}
	svc, repo := newTestService(prov)

	_, err := svc.FetchPokemon(context.Background(), "bulbasaur", Facets{Details: true, EvolutionChain: true}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrDetailsUnavailable)

	p, err := repo.Get("bulbasaur")
	require.NoError(t, err)
	chain := p.EvolutionChain()
	require.NotNil(t, chain)

	stage := chain.Pokemon(domain.NodeID(1))
	assert.NotSame(t, p, stage)
	assert.Equal(t, "ivysaur", stage.Name())
	assert.False(t, stage.HasDetails())
}
