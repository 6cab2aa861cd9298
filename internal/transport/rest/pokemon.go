package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/pokedex-backend/internal/domain"
	"github.com/heartmarshall/pokedex-backend/internal/service/pokedex"
)

type pokedexService interface {
	FetchPokemon(ctx context.Context, name string, facets pokedex.Facets, opts pokedex.Options) (*domain.Pokemon, error)
	Loaded() []*domain.Pokemon
}

type pagePaginator interface {
	Next(ctx context.Context) (*pokedex.Page, error)
	State() pokedex.State
	Cursor() (offset, limit int)
}

type pokemonSelection interface {
	Select(name string) (*domain.Pokemon, error)
	Selected() (*domain.Pokemon, bool)
}

// PokemonHandler serves the pokedex REST endpoints.
type PokemonHandler struct {
	pokedex   pokedexService
	pages     pagePaginator
	selection pokemonSelection
	log       *slog.Logger
}

// NewPokemonHandler creates a PokemonHandler.
func NewPokemonHandler(svc pokedexService, pages pagePaginator, selection pokemonSelection, logger *slog.Logger) *PokemonHandler {
	return &PokemonHandler{
		pokedex:   svc,
		pages:     pages,
		selection: selection,
		log:       logger.With("handler", "pokemon"),
	}
}

// Register adds the pokedex routes to mux.
func (h *PokemonHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/pokemon", h.List)
	mux.HandleFunc("POST /api/pokemon/next", h.Next)
	mux.HandleFunc("GET /api/pokemon/{name}", h.Get)
	mux.HandleFunc("POST /api/selection/{name}", h.Select)
	mux.HandleFunc("GET /api/selection", h.Selected)
}

// List returns every loaded pokemon in load order.
// GET /api/pokemon
func (h *PokemonHandler) List(w http.ResponseWriter, r *http.Request) {
	state := h.pages.State()
	offset, limit := h.pages.Cursor()
	writeJSON(w, http.StatusOK, listView{
		Pokemon:    toSummaries(h.pokedex.Loaded()),
		State:      state.String(),
		Exhausted:  state == pokedex.StateExhausted,
		NextOffset: offset,
		NextLimit:  limit,
	})
}

// Next loads the next listing page.
// POST /api/pokemon/next
func (h *PokemonHandler) Next(w http.ResponseWriter, r *http.Request) {
	page, err := h.pages.Next(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageView(page))
}

// Get fetches one pokemon. Details are always loaded.
// GET /api/pokemon/{name}?species=true&evolution=true&reload=false&lang=en
func (h *PokemonHandler) Get(w http.ResponseWriter, r *http.Request) {
	species, err := queryBool(r, "species", false)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	evolution, err := queryBool(r, "evolution", false)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	reload, err := queryBool(r, "reload", false)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.pokedex.FetchPokemon(r.Context(), r.PathValue("name"),
		pokedex.Facets{Details: true, Species: species, EvolutionChain: evolution},
		pokedex.Options{Reload: reload},
	)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPokemonView(p, r.URL.Query().Get("lang")))
}

// Select marks a loaded pokemon as selected and loads its species and
// evolution chain. The selection holds even if enrichment fails.
// POST /api/selection/{name}
func (h *PokemonHandler) Select(w http.ResponseWriter, r *http.Request) {
	p, err := h.selection.Select(r.PathValue("name"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err = h.pokedex.FetchPokemon(r.Context(), p.Name(),
		pokedex.Facets{Details: true, EvolutionChain: true},
		pokedex.Options{},
	)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPokemonView(p, r.URL.Query().Get("lang")))
}

// Selected returns the selected pokemon.
// GET /api/selection
func (h *PokemonHandler) Selected(w http.ResponseWriter, r *http.Request) {
	p, ok := h.selection.Selected()
	if !ok {
		writeError(w, http.StatusNotFound, "no pokemon selected")
		return
	}
	writeJSON(w, http.StatusOK, toPokemonView(p, r.URL.Query().Get("lang")))
}
