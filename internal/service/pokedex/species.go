package pokedex

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
)

// fetchSpecies attaches the species record to p. The species is looked up by
// the species name from details when present, else by the pokemon name. A
// not-found lookup is retried once with the base species name (the part
// before the first hyphen), which covers form names like "deoxys-attack".
func (s *Service) fetchSpecies(ctx context.Context, p *domain.Pokemon, withChain bool) error {
	name := p.Name()
	if speciesName, err := p.SpeciesName(); err == nil && speciesName != "" {
		name = speciesName
	}

	res, err := s.provider.FetchSpecies(ctx, name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return &domain.SpeciesError{Name: name, Err: err}
		}

		forced := domain.BaseSpeciesName(name)
		if forced == name {
			return &domain.SpeciesError{Name: name, Err: err}
		}

		s.log.InfoContext(ctx, "species not found, retrying with base name",
			slog.String("pokemon", name),
			slog.String("forced", forced),
		)

		res, err = s.provider.FetchSpecies(ctx, forced)
		if err != nil {
			return &domain.SpeciesError{Name: name, Forced: forced, Err: err}
		}
	}

	if err := p.SetData(domain.SubRecord{Kind: domain.RecordSpecies, Species: mapSpecies(res)}); err != nil {
		return err
	}
	if !withChain {
		return nil
	}
	_, err = s.ResolveEvolutionChain(ctx, p)
	return err
}
