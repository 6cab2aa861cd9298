package pokedex

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

// Page is one enriched page of the pokemon listing.
type Page struct {
	Offset    int
	Limit     int
	Count     int
	Pokemon   []*domain.Pokemon
	Exhausted bool
}

// FetchPage fetches one listing page and enriches every entry with details
// plus the requested facets. Entries are registered in listing order before
// any enrichment starts, so registry order follows the listing regardless of
// which fetch finishes first. The final page (no next link) is enriched
// like any other and reported as exhausted.
func (s *Service) FetchPage(ctx context.Context, offset, limit int, facets Facets) (*Page, error) {
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}

	res, err := s.provider.FetchPage(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("fetch page offset=%d limit=%d: %w", offset, limit, err)
	}

	page := &Page{
		Offset:    offset,
		Limit:     limit,
		Count:     res.Count,
		Pokemon:   make([]*domain.Pokemon, 0, len(res.Results)),
		Exhausted: res.Next == nil,
	}
	for _, r := range res.Results {
		name := domain.NormalizeName(r.Name)
		if name == "" {
			continue
		}
		page.Pokemon = append(page.Pokemon, s.prepare(name, Options{}))
	}

	facets.Details = true

	var g errgroup.Group
	for _, p := range page.Pokemon {
		g.Go(func() error {
			return s.enrich(ctx, p, facets, false)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "page loaded",
		slog.Int("offset", offset),
		slog.Int("limit", limit),
		slog.Int("pokemon", len(page.Pokemon)),
		slog.Bool("exhausted", page.Exhausted),
	)

	return page, nil
}
