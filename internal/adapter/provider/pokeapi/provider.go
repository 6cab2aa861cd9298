package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/pokedex-backend/internal/config"
	"github.com/heartmarshall/pokedex-backend/internal/provider"
)

const (
	defaultBaseURL    = "https://pokeapi.co/api/v2"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

// Provider fetches pokemon data from PokeAPI.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	userAgent  string
	log        *slog.Logger
}

// NewProvider creates a Provider from configuration.
func NewProvider(cfg config.PokeAPIConfig, logger *slog.Logger) *Provider {
	p := NewProviderWithURL(cfg.BaseURL, logger)
	if cfg.RequestTimeout > 0 {
		p.httpClient.Timeout = cfg.RequestTimeout
	}
	p.retryDelay = cfg.RetryDelay
	return p
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", "pokeapi"),
	}
}

// SetUserAgent sets the User-Agent sent with every request.
func (p *Provider) SetUserAgent(ua string) { p.userAgent = ua }

// BaseURL returns the API root every derived URL starts with.
func (p *Provider) BaseURL() string { return p.baseURL }

// Get performs a GET on rawURL and decodes the JSON payload into out.
// Every failure is a *provider.RequestError; a 404 satisfies
// errors.Is(err, domain.ErrNotFound).
func (p *Provider) Get(ctx context.Context, rawURL string, out any) error {
	if rawURL == "" {
		return &provider.RequestError{Err: errors.New("url is required")}
	}

	p.log.DebugContext(ctx, "pokeapi request", slog.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &provider.RequestError{URL: rawURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		p.log.ErrorContext(ctx, "pokeapi request failed", slog.String("url", rawURL), slog.String("error", err.Error()))
		return &provider.RequestError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &provider.RequestError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        errors.New(http.StatusText(resp.StatusCode)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &provider.RequestError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &provider.RequestError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode json: %w", err)}
	}

	p.log.DebugContext(ctx, "pokeapi response",
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)

	return nil
}

// FetchPage fetches one page of the pokemon listing.
func (p *Provider) FetchPage(ctx context.Context, offset, limit int) (*provider.PageResult, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))

	var page apiPage
	if err := p.Get(ctx, p.baseURL+"/pokemon?"+q.Encode(), &page); err != nil {
		return nil, err
	}

	result := &provider.PageResult{
		Count:   page.Count,
		Next:    page.Next,
		Results: make([]provider.NamedResource, 0, len(page.Results)),
	}
	for _, r := range page.Results {
		result.Results = append(result.Results, provider.NamedResource{Name: r.Name, URL: r.URL})
	}
	return result, nil
}

// FetchDetails fetches the details record at detailsURL.
func (p *Provider) FetchDetails(ctx context.Context, detailsURL string) (*provider.DetailsResult, error) {
	var raw apiPokemon
	if err := p.Get(ctx, detailsURL, &raw); err != nil {
		return nil, err
	}
	return mapDetails(raw), nil
}

// FetchSpecies fetches the species record keyed by name.
func (p *Provider) FetchSpecies(ctx context.Context, name string) (*provider.SpeciesResult, error) {
	var raw apiSpecies
	if err := p.Get(ctx, p.baseURL+"/pokemon-species/"+url.PathEscape(name), &raw); err != nil {
		return nil, err
	}
	return mapSpecies(raw), nil
}

// FetchEvolutionChain fetches the evolution chain at chainURL.
func (p *Provider) FetchEvolutionChain(ctx context.Context, chainURL string) (*provider.ChainResult, error) {
	var raw apiChain
	if err := p.Get(ctx, chainURL, &raw); err != nil {
		return nil, err
	}
	return &provider.ChainResult{ID: raw.ID, Chain: mapChainLink(raw.Chain)}, nil
}

// Ping checks that the upstream listing endpoint answers.
func (p *Provider) Ping(ctx context.Context) error {
	var page apiPage
	return p.Get(ctx, p.baseURL+"/pokemon?limit=1", &page)
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "pokeapi retry", slog.String("url", req.URL.String()), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

func mapDetails(raw apiPokemon) *provider.DetailsResult {
	d := &provider.DetailsResult{
		ID:              raw.ID,
		Name:            raw.Name,
		Weight:          raw.Weight,
		Order:           raw.Order,
		FrontSprite:     deref(raw.Sprites.FrontDefault),
		BackSprite:      deref(raw.Sprites.BackDefault),
		OfficialArtwork: deref(raw.Sprites.Other.OfficialArtwork.FrontDefault),
		Types:           make([]string, 0, len(raw.Types)),
		Abilities:       make([]string, 0, len(raw.Abilities)),
		Stats:           make([]provider.StatResult, 0, len(raw.Stats)),
		SpeciesName:     raw.Species.Name,
	}
	for _, t := range raw.Types {
		d.Types = append(d.Types, t.Type.Name)
	}
	for _, a := range raw.Abilities {
		d.Abilities = append(d.Abilities, a.Ability.Name)
	}
	for _, s := range raw.Stats {
		d.Stats = append(d.Stats, provider.StatResult{Name: s.Stat.Name, Base: s.BaseStat})
	}
	return d
}

func mapSpecies(raw apiSpecies) *provider.SpeciesResult {
	s := &provider.SpeciesResult{
		Name:        raw.Name,
		FlavorTexts: make([]provider.FlavorTextResult, 0, len(raw.FlavorTextEntries)),
	}
	for _, ft := range raw.FlavorTextEntries {
		s.FlavorTexts = append(s.FlavorTexts, provider.FlavorTextResult{
			Language: ft.Language.Name,
			Text:     ft.FlavorText,
		})
	}
	if raw.EvolutionChain != nil {
		s.EvolutionChainURL = raw.EvolutionChain.URL
	}
	return s
}

func mapChainLink(raw apiChainLink) provider.ChainLinkResult {
	link := provider.ChainLinkResult{SpeciesName: raw.Species.Name}
	for _, next := range raw.EvolvesTo {
		link.EvolvesTo = append(link.EvolvesTo, mapChainLink(next))
	}
	return link
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
