package pokeapi

// apiNamed is the {name, url} reference the API uses for every linked resource.
type apiNamed struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// apiPage is the list endpoint response. Next is null on the last page.
type apiPage struct {
	Count   int        `json:"count"`
	Next    *string    `json:"next"`
	Results []apiNamed `json:"results"`
}

// apiPokemon is the pokemon details endpoint response (fields we use).
type apiPokemon struct {
	ID        int          `json:"id"`
	Name      string       `json:"name"`
	Weight    int          `json:"weight"`
	Order     int          `json:"order"`
	Sprites   apiSprites   `json:"sprites"`
	Types     []apiType    `json:"types"`
	Abilities []apiAbility `json:"abilities"`
	Stats     []apiStat    `json:"stats"`
	Species   apiNamed     `json:"species"`
}

// apiSprites holds image URLs; any of them may be null.
type apiSprites struct {
	FrontDefault *string `json:"front_default"`
	BackDefault  *string `json:"back_default"`
	Other        struct {
		OfficialArtwork struct {
			FrontDefault *string `json:"front_default"`
		} `json:"official-artwork"`
	} `json:"other"`
}

type apiType struct {
	Slot int      `json:"slot"`
	Type apiNamed `json:"type"`
}

type apiAbility struct {
	Ability apiNamed `json:"ability"`
}

type apiStat struct {
	BaseStat int      `json:"base_stat"`
	Stat     apiNamed `json:"stat"`
}

// apiSpecies is the pokemon-species endpoint response (fields we use).
type apiSpecies struct {
	Name              string          `json:"name"`
	FlavorTextEntries []apiFlavorText `json:"flavor_text_entries"`
	EvolutionChain    *struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

type apiFlavorText struct {
	FlavorText string   `json:"flavor_text"`
	Language   apiNamed `json:"language"`
}

// apiChain is the evolution-chain endpoint response.
type apiChain struct {
	ID    int          `json:"id"`
	Chain apiChainLink `json:"chain"`
}

// apiChainLink is one recursive stage of a chain.
type apiChainLink struct {
	Species   apiNamed       `json:"species"`
	EvolvesTo []apiChainLink `json:"evolves_to"`
}
