package provider

// PageResult is one page of the upstream pokemon listing.
// Next is nil once the listing is exhausted.
type PageResult struct {
	Count   int
	Next    *string
	Results []NamedResource
}

// NamedResource is a name plus the URL it can be fetched from.
type NamedResource struct {
	Name string
	URL  string
}

// DetailsResult is the structured result of the pokemon details endpoint.
type DetailsResult struct {
	ID              int
	Name            string
	Weight          int
	Order           int
	FrontSprite     string
	BackSprite      string
	OfficialArtwork string
	Types           []string
	Abilities       []string
	Stats           []StatResult
	SpeciesName     string
}

// StatResult is one base stat.
type StatResult struct {
	Name string
	Base int
}

// SpeciesResult is the structured result of the pokemon-species endpoint.
// EvolutionChainURL is empty for species without a recorded chain.
type SpeciesResult struct {
	Name              string
	FlavorTexts       []FlavorTextResult
	EvolutionChainURL string
}

// FlavorTextResult is one language-tagged flavor text entry.
type FlavorTextResult struct {
	Language string
	Text     string
}

// ChainResult is the structured result of the evolution-chain endpoint.
type ChainResult struct {
	ID    int
	Chain ChainLinkResult
}

// ChainLinkResult is one stage of a chain with its direct evolutions.
type ChainLinkResult struct {
	SpeciesName string
	EvolvesTo   []ChainLinkResult
}
