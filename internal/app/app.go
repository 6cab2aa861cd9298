package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	pokemonrepo "github.com/heartmarshall/pokedex-backend/internal/adapter/memory/pokemon"
	"github.com/heartmarshall/pokedex-backend/internal/adapter/provider/pokeapi"
	"github.com/heartmarshall/pokedex-backend/internal/config"
	"github.com/heartmarshall/pokedex-backend/internal/service/pokedex"
	"github.com/heartmarshall/pokedex-backend/internal/transport/middleware"
	"github.com/heartmarshall/pokedex-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration from
// configPath (see config.Load), wires the components and serves HTTP until
// ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("pokeapi", cfg.PokeAPI.BaseURL),
	)

	a := New(cfg, logger)
	defer a.Close()

	return a.Serve(ctx)
}

// App holds the wired components.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	limiter *middleware.RateLimiter

	Provider  *pokeapi.Provider
	Pokedex   *pokedex.Service
	Paginator *pokedex.Paginator
	Selection *pokedex.Selection
}

// New wires the provider, registry, services and paginator.
func New(cfg *config.Config, logger *slog.Logger) *App {
	prov := pokeapi.NewProvider(cfg.PokeAPI, logger)
	prov.SetUserAgent(UserAgent())

	registry := pokemonrepo.New()
	svc := pokedex.NewService(logger, registry, prov)

	return &App{
		cfg:       cfg,
		log:       logger,
		limiter:   middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval),
		Provider:  prov,
		Pokedex:   svc,
		Paginator: pokedex.NewPaginator(logger, svc, PaginatorConfig(cfg.Pagination)),
		Selection: pokedex.NewSelection(registry),
	}
}

// PaginatorConfig derives the cursor settings. A zero first step is taken
// from the viewport width.
func PaginatorConfig(cfg config.PaginationConfig) pokedex.PaginatorConfig {
	first := cfg.FirstStep
	if first == 0 {
		first = pokedex.StepForWidth(cfg.ViewportWidth)
	}
	return pokedex.PaginatorConfig{
		FirstStep: first,
		Step:      cfg.Step,
		Facets: pokedex.Facets{
			Details:        true,
			Species:        cfg.WithSpecies,
			EvolutionChain: cfg.WithEvolution,
		},
	}
}

// Handler returns the HTTP handler with the full middleware chain.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	rest.NewHealthHandler(a.Provider, BuildVersion()).Register(mux)
	rest.NewPokemonHandler(a.Pokedex, a.Paginator, a.Selection, a.log).Register(mux)

	return middleware.Chain(
		middleware.Recovery(a.log),
		middleware.RequestID(),
		middleware.Logger(a.log),
		middleware.CORS(a.cfg.CORS),
		a.limiter.Limit(a.cfg.RateLimit.RequestsPerMinute),
	)(mux)
}

// Serve listens on the configured address until ctx is done, then shuts
// down gracefully.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(a.cfg.Server.Host, strconv.Itoa(a.cfg.Server.Port)),
		Handler:      a.Handler(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return <-errCh
}

// Close releases background resources.
func (a *App) Close() {
	a.limiter.Stop()
}
