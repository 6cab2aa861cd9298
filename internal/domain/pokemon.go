package domain

import (
	"slices"
	"sync"
)

// Stat names as used by the upstream API.
const (
	StatHP             = "hp"
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special-attack"
	StatSpecialDefense = "special-defense"
	StatSpeed          = "speed"
)

// StatNames lists the six base stats in display order.
var StatNames = []string{StatHP, StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}

// Details is the sub-record loaded from the pokemon endpoint.
type Details struct {
	ID              int
	Name            string
	Weight          int
	Order           int
	FrontSprite     string
	BackSprite      string
	OfficialArtwork string
	Types           []string
	Abilities       []string
	Stats           map[string]int
	SpeciesName     string
}

// Stat returns the base value of the named stat, 0 if the stat is absent.
func (d *Details) Stat(name string) int {
	return d.Stats[name]
}

// StatTotal sums all base stats.
func (d *Details) StatTotal() int {
	total := 0
	for _, v := range d.Stats {
		total += v
	}
	return total
}

// FlavorText is one language-tagged description of a species.
type FlavorText struct {
	Language string
	Text     string
}

// Species is the sub-record loaded from the pokemon-species endpoint.
type Species struct {
	Name              string
	FlavorTexts       []FlavorText
	EvolutionChainURL string
}

// FlavorText returns the first flavor text for language (empty means "en"),
// with control characters stripped. Returns "" if none exists.
func (s *Species) FlavorText(language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	for _, ft := range s.FlavorTexts {
		if ft.Language == language {
			return CleanFlavorText(ft.Text)
		}
	}
	return ""
}

// MustFlavorText is FlavorText that fails when the language has no entry.
func (s *Species) MustFlavorText(language string) (string, error) {
	if language == "" {
		language = DefaultLanguage
	}
	for _, ft := range s.FlavorTexts {
		if ft.Language == language {
			return CleanFlavorText(ft.Text), nil
		}
	}
	return "", NewValidationError("flavor_text", "no entry for language "+language)
}

// DefaultLanguage is the flavor text language used when none is given.
const DefaultLanguage = "en"

// RecordKind identifies which sub-record a SubRecord carries.
type RecordKind int

const (
	RecordDetails RecordKind = iota + 1
	RecordSpecies
	RecordEvolutionChain
)

func (k RecordKind) String() string {
	switch k {
	case RecordDetails:
		return "details"
	case RecordSpecies:
		return "species"
	case RecordEvolutionChain:
		return "evolution_chain"
	default:
		return "unknown"
	}
}

// SubRecord is a tagged payload for Pokemon.SetData. Only the field matching
// Kind is read.
type SubRecord struct {
	Kind    RecordKind
	Details *Details
	Species *Species
	Chain   *EvolutionChain
}

// Contents summarises which sub-records are attached.
type Contents struct {
	HasDetails        bool `json:"has_details"`
	HasSpecies        bool `json:"has_species"`
	HasEvolutionChain bool `json:"has_evolution_chain"`
}

// Pokemon is the aggregate keyed by its canonical name. Sub-records are
// attached over time; accessors that need a missing sub-record fail with a
// DetailsError or SpeciesError.
type Pokemon struct {
	name string
	url  string

	mu      sync.RWMutex
	details *Details
	species *Species
	chain   *EvolutionChain
}

// NewPokemon creates a pokemon with no sub-records attached.
func NewPokemon(name, detailsURL string) *Pokemon {
	return &Pokemon{name: name, url: detailsURL}
}

// MakePokemon creates a stub pokemon whose details URL is derived from the
// API base URL: {baseURL}/pokemon/{name}.
func MakePokemon(baseURL, name string) *Pokemon {
	return NewPokemon(name, DetailsURL(baseURL, name))
}

// DetailsURL builds the canonical details endpoint for name.
func DetailsURL(baseURL, name string) string {
	return baseURL + "/pokemon/" + name
}

// Name returns the canonical name. It never changes after construction.
func (p *Pokemon) Name() string { return p.name }

// DetailsURL returns the endpoint the details sub-record is loaded from.
func (p *Pokemon) DetailsURL() string { return p.url }

// SetData attaches a sub-record, dispatching on its kind.
func (p *Pokemon) SetData(rec SubRecord) error {
	switch rec.Kind {
	case RecordDetails:
		return p.SetDetails(rec.Details)
	case RecordSpecies:
		return p.SetSpecies(rec.Species)
	case RecordEvolutionChain:
		return p.SetEvolutionChain(rec.Chain)
	default:
		return NewValidationError("kind", "unsupported sub-record kind "+rec.Kind.String())
	}
}

// SetDetails attaches details. The details must describe the same pokemon.
func (p *Pokemon) SetDetails(d *Details) error {
	if d == nil {
		return NewValidationError("details", "required")
	}
	if d.Name != p.name {
		return NewValidationError("details.name", "["+d.Name+"] and ["+p.name+"] are not the same pokemon")
	}
	p.mu.Lock()
	p.details = d
	p.mu.Unlock()
	return nil
}

// SetSpecies attaches species data. Species records are name-agnostic.
func (p *Pokemon) SetSpecies(s *Species) error {
	if s == nil {
		return NewValidationError("species", "required")
	}
	p.mu.Lock()
	p.species = s
	p.mu.Unlock()
	return nil
}

// SetEvolutionChain attaches an evolution chain.
func (p *Pokemon) SetEvolutionChain(c *EvolutionChain) error {
	if c == nil {
		return NewValidationError("evolution_chain", "required")
	}
	p.mu.Lock()
	p.chain = c
	p.mu.Unlock()
	return nil
}

// HasDetails reports whether the details sub-record is attached.
func (p *Pokemon) HasDetails() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.details != nil
}

// HasSpecies reports whether the species sub-record is attached.
func (p *Pokemon) HasSpecies() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.species != nil
}

// HasEvolutionChain reports whether an evolution chain is attached.
func (p *Pokemon) HasEvolutionChain() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.chain != nil
}

// Contains reports which sub-records are attached.
func (p *Pokemon) Contains() Contents {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Contents{
		HasDetails:        p.details != nil,
		HasSpecies:        p.species != nil,
		HasEvolutionChain: p.chain != nil,
	}
}

// Details returns the attached details or a DetailsError.
func (p *Pokemon) Details() (*Details, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.details == nil {
		return nil, &DetailsError{Name: p.name}
	}
	return p.details, nil
}

// Species returns the attached species or a SpeciesError.
func (p *Pokemon) Species() (*Species, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.species == nil {
		return nil, &SpeciesError{Name: p.name}
	}
	return p.species, nil
}

// EvolutionChain returns the attached chain, nil if none was resolved.
func (p *Pokemon) EvolutionChain() *EvolutionChain {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.chain
}

// ID returns the upstream pokemon id from details.
func (p *Pokemon) ID() (int, error) {
	d, err := p.Details()
	if err != nil {
		return 0, err
	}
	return d.ID, nil
}

// Weight returns the weight in hectograms.
func (p *Pokemon) Weight() (int, error) {
	d, err := p.Details()
	if err != nil {
		return 0, err
	}
	return d.Weight, nil
}

// Order returns the upstream sort order, which groups forms with their base pokemon.
func (p *Pokemon) Order() (int, error) {
	d, err := p.Details()
	if err != nil {
		return 0, err
	}
	return d.Order, nil
}

// FrontSprite returns the default front sprite URL, "" if upstream has none.
func (p *Pokemon) FrontSprite() (string, error) {
	d, err := p.Details()
	if err != nil {
		return "", err
	}
	return d.FrontSprite, nil
}

// BackSprite returns the default back sprite URL, "" if upstream has none.
func (p *Pokemon) BackSprite() (string, error) {
	d, err := p.Details()
	if err != nil {
		return "", err
	}
	return d.BackSprite, nil
}

// OfficialArtwork returns the official artwork URL, "" if upstream has none.
func (p *Pokemon) OfficialArtwork() (string, error) {
	d, err := p.Details()
	if err != nil {
		return "", err
	}
	return d.OfficialArtwork, nil
}

// Types returns a copy of the type names in slot order.
func (p *Pokemon) Types() ([]string, error) {
	d, err := p.Details()
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.Types), nil
}

// Abilities returns a copy of the ability names in slot order.
func (p *Pokemon) Abilities() ([]string, error) {
	d, err := p.Details()
	if err != nil {
		return nil, err
	}
	return slices.Clone(d.Abilities), nil
}

// SpeciesName is the authoritative species reference from the details record.
func (p *Pokemon) SpeciesName() (string, error) {
	d, err := p.Details()
	if err != nil {
		return "", err
	}
	return d.SpeciesName, nil
}

// Stat returns the base value of the named stat, 0 if the stat is absent.
func (p *Pokemon) Stat(name string) (int, error) {
	d, err := p.Details()
	if err != nil {
		return 0, err
	}
	return d.Stat(name), nil
}

// FlavorText returns the species description for language ("" means "en").
func (p *Pokemon) FlavorText(language string) (string, error) {
	s, err := p.Species()
	if err != nil {
		return "", err
	}
	return s.FlavorText(language), nil
}

// Clone returns a shallow copy: a distinct Pokemon sharing the same
// sub-record values.
func (p *Pokemon) Clone() *Pokemon {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Pokemon{
		name:    p.name,
		url:     p.url,
		details: p.details,
		species: p.species,
		chain:   p.chain,
	}
}
