package app

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/pokedex-backend/internal/config"
	"github.com/heartmarshall/pokedex-backend/internal/transport/middleware"
)

func fakePokeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("GET /pokemon", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"count": 2, "next": null, "results": [
			{"name": "bulbasaur", "url": ""},
			{"name": "ivysaur", "url": ""}
		]}`)
	})
	mux.HandleFunc("GET /pokemon/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		fmt.Fprintf(w, `{
			"id": %d, "name": %q, "weight": 69, "order": 1,
			"sprites": {"front_default": "%s.png", "back_default": null, "other": {"official-artwork": {"front_default": null}}},
			"types": [{"slot": 1, "type": {"name": "grass"}}],
			"abilities": [{"ability": {"name": "overgrow"}}],
			"stats": [{"base_stat": 45, "stat": {"name": "hp"}}],
			"species": {"name": %q}
		}`, len(name), name, name, name)
	})
	mux.HandleFunc("GET /pokemon-species/{name}", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{
			"name": %q,
			"flavor_text_entries": [{"flavor_text": "A strange seed was\fplanted.", "language": {"name": "en"}}],
			"evolution_chain": {"url": "%s/evolution-chain/1/"}
		}`, r.PathValue("name"), srv.URL)
	})
	mux.HandleFunc("GET /evolution-chain/{id}/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": 1, "chain": {
			"species": {"name": "bulbasaur"},
			"evolves_to": [{"species": {"name": "ivysaur"}, "evolves_to": [{"species": {"name": "venusaur"}, "evolves_to": []}]}]
		}}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		PokeAPI: config.PokeAPIConfig{BaseURL: baseURL, RequestTimeout: 2 * time.Second, RetryDelay: time.Millisecond},
		Pagination: config.PaginationConfig{
			Step:          20,
			ViewportWidth: 1280,
			WithSpecies:   true,
		},
		CORS:      config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST"},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 0, CleanupInterval: time.Minute},
	}
}

func request(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestApp_EndToEnd(t *testing.T) {
	upstream := fakePokeAPI(t)
	a := New(testConfig(upstream.URL), slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer a.Close()
	h := a.Handler()

	rec, _ := request(t, h, http.MethodGet, "/ready")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	rec, page := request(t, h, http.MethodPost, "/api/pokemon/next")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, page["exhausted"])
	assert.Equal(t, float64(20), page["limit"])

	_, list := request(t, h, http.MethodGet, "/api/pokemon")
	loaded := list["pokemon"].([]any)
	require.Len(t, loaded, 2)
	assert.Equal(t, "bulbasaur", loaded[0].(map[string]any)["name"])
	assert.Equal(t, "ivysaur", loaded[1].(map[string]any)["name"])
	contents := loaded[0].(map[string]any)["contents"].(map[string]any)
	assert.Equal(t, true, contents["has_details"])
	assert.Equal(t, true, contents["has_species"])
	assert.Equal(t, "exhausted", list["state"])

	rec, _ = request(t, h, http.MethodPost, "/api/pokemon/next")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, selected := request(t, h, http.MethodPost, "/api/selection/bulbasaur")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A strange seed was planted.", selected["flavor_text"])
	chain := selected["evolution_chain"].([]any)
	require.Len(t, chain, 3)
	assert.Equal(t, "venusaur", chain[2].(map[string]any)["name"])
	assert.Equal(t, true, chain[2].(map[string]any)["has_details"])

	_, list = request(t, h, http.MethodGet, "/api/pokemon")
	assert.Len(t, list["pokemon"], 2, "evolution stages are not registered")

	rec, _ = request(t, h, http.MethodPost, "/api/selection/venusaur")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, current := request(t, h, http.MethodGet, "/api/selection")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "bulbasaur", current["name"])
}

func TestPaginatorConfig(t *testing.T) {
	t.Parallel()

	cfg := PaginatorConfig(config.PaginationConfig{Step: 20, ViewportWidth: 3440, WithEvolution: true})
	assert.Equal(t, 60, cfg.FirstStep)
	assert.Equal(t, 20, cfg.Step)
	assert.True(t, cfg.Facets.Details)
	assert.True(t, cfg.Facets.EvolutionChain)

	cfg = PaginatorConfig(config.PaginationConfig{FirstStep: 7, Step: 20, ViewportWidth: 3440})
	assert.Equal(t, 7, cfg.FirstStep)
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pokedex-backend/"+Version, UserAgent())
	assert.Contains(t, BuildVersion(), Version)
}
