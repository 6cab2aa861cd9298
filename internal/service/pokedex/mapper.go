package pokedex

import (
	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/provider"
)

func mapDetails(res *provider.DetailsResult) *domain.Details {
	stats := make(map[string]int, len(res.Stats))
	for _, st := range res.Stats {
		stats[st.Name] = st.Base
	}
	return &domain.Details{
		ID:              res.ID,
		Name:            res.Name,
		Weight:          res.Weight,
		Order:           res.Order,
		FrontSprite:     res.FrontSprite,
		BackSprite:      res.BackSprite,
		OfficialArtwork: res.OfficialArtwork,
		Types:           res.Types,
		Abilities:       res.Abilities,
		Stats:           stats,
		SpeciesName:     res.SpeciesName,
	}
}

func mapSpecies(res *provider.SpeciesResult) *domain.Species {
	texts := make([]domain.FlavorText, 0, len(res.FlavorTexts))
	for _, ft := range res.FlavorTexts {
		texts = append(texts, domain.FlavorText{Language: ft.Language, Text: ft.Text})
	}
	return &domain.Species{
		Name:              res.Name,
		FlavorTexts:       texts,
		EvolutionChainURL: res.EvolutionChainURL,
	}
}
