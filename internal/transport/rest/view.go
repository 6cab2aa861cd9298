package rest

import (
	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/service/pokedex"
)

type pokemonSummary struct {
	Name        string          `json:"name"`
	ID          int             `json:"id,omitempty"`
	Types       []string        `json:"types,omitempty"`
	FrontSprite string          `json:"front_sprite,omitempty"`
	Contents    domain.Contents `json:"contents"`
}

type statView struct {
	Name    string  `json:"name"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

type evolutionView struct {
	Name         string `json:"name"`
	ID           int    `json:"id,omitempty"`
	FrontSprite  string `json:"front_sprite,omitempty"`
	Phase        int    `json:"phase"`
	PhaseIndex   int    `json:"phase_index"`
	SiblingCount int    `json:"sibling_count"`
	HasDetails   bool   `json:"has_details"`
}

type pokemonView struct {
	pokemonSummary
	Weight          int             `json:"weight,omitempty"`
	Order           int             `json:"order,omitempty"`
	BackSprite      string          `json:"back_sprite,omitempty"`
	OfficialArtwork string          `json:"official_artwork,omitempty"`
	Abilities       []string        `json:"abilities,omitempty"`
	Stats           []statView      `json:"stats,omitempty"`
	StatTotal       *statView       `json:"stat_total,omitempty"`
	Species         string          `json:"species,omitempty"`
	FlavorText      string          `json:"flavor_text,omitempty"`
	EvolutionChain  []evolutionView `json:"evolution_chain,omitempty"`
}

type pageView struct {
	Offset    int              `json:"offset"`
	Limit     int              `json:"limit"`
	Count     int              `json:"count"`
	Exhausted bool             `json:"exhausted"`
	Pokemon   []pokemonSummary `json:"pokemon"`
}

type listView struct {
	Pokemon    []pokemonSummary `json:"pokemon"`
	State      string           `json:"state"`
	Exhausted  bool             `json:"exhausted"`
	NextOffset int              `json:"next_offset"`
	NextLimit  int              `json:"next_limit"`
}

func toSummary(p *domain.Pokemon) pokemonSummary {
	s := pokemonSummary{Name: p.Name(), Contents: p.Contains()}
	if d, err := p.Details(); err == nil {
		s.ID = d.ID
		s.Types = d.Types
		s.FrontSprite = d.FrontSprite
	}
	return s
}

func toSummaries(list []*domain.Pokemon) []pokemonSummary {
	out := make([]pokemonSummary, 0, len(list))
	for _, p := range list {
		out = append(out, toSummary(p))
	}
	return out
}

func toPokemonView(p *domain.Pokemon, language string) pokemonView {
	v := pokemonView{pokemonSummary: toSummary(p)}

	if d, err := p.Details(); err == nil {
		v.Weight = d.Weight
		v.Order = d.Order
		v.BackSprite = d.BackSprite
		v.OfficialArtwork = d.OfficialArtwork
		v.Abilities = d.Abilities
		v.Species = d.SpeciesName
		for _, name := range domain.StatNames {
			value, ok := d.Stats[name]
			if !ok {
				continue
			}
			v.Stats = append(v.Stats, statView{
				Name:    name,
				Value:   value,
				Percent: domain.StatPercent(value, domain.MaxSingleStat),
			})
		}
		total := d.StatTotal()
		v.StatTotal = &statView{Name: "total", Value: total, Percent: domain.StatPercent(total, domain.MaxTotalStat)}
	}

	if s, err := p.Species(); err == nil {
		if v.Species == "" {
			v.Species = s.Name
		}
		v.FlavorText = s.FlavorText(language)
	}

	if chain := p.EvolutionChain(); chain != nil {
		chain.LinkMap(func(link domain.Link, stage *domain.Pokemon) {
			ev := evolutionView{
				Name:         stage.Name(),
				Phase:        link.Phase,
				PhaseIndex:   link.PhaseIndex,
				SiblingCount: link.SiblingCount,
			}
			if d, err := stage.Details(); err == nil {
				ev.ID = d.ID
				ev.FrontSprite = d.FrontSprite
				ev.HasDetails = true
			}
			v.EvolutionChain = append(v.EvolutionChain, ev)
		})
	}
	return v
}

func toPageView(page *pokedex.Page) pageView {
	return pageView{
		Offset:    page.Offset,
		Limit:     page.Limit,
		Count:     page.Count,
		Exhausted: page.Exhausted,
		Pokemon:   toSummaries(page.Pokemon),
	}
}
